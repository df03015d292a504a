package domain

import (
	"testing"
)

func TestListParams_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		params    ListParams
		wantPage  int
		wantLimit int
	}{
		{
			name:      "zero values get defaults",
			params:    ListParams{},
			wantPage:  1,
			wantLimit: DefaultFeedPageSize,
		},
		{
			name:      "negative page clamped",
			params:    ListParams{Page: -3, Limit: 10},
			wantPage:  1,
			wantLimit: 10,
		},
		{
			name:      "oversized limit clamped to max",
			params:    ListParams{Page: 2, Limit: 500},
			wantPage:  2,
			wantLimit: MaxPageSize,
		},
		{
			name:      "valid values untouched",
			params:    ListParams{Page: 7, Limit: 15},
			wantPage:  7,
			wantLimit: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Normalize()
			if tt.params.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.params.Page, tt.wantPage)
			}
			if tt.params.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", tt.params.Limit, tt.wantLimit)
			}
			if tt.params.Sort == "" || tt.params.Order == "" || tt.params.Privacy == "" {
				t.Error("Normalize must fill sort, order and privacy defaults")
			}
		})
	}
}

func TestListParams_Offset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 4, 0},
		{2, 4, 4},
		{3, 10, 20},
		{10, 50, 450},
	}

	for _, tt := range tests {
		p := ListParams{Page: tt.page, Limit: tt.limit}
		if got := p.Offset(); got != tt.want {
			t.Errorf("Offset(page=%d, limit=%d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestNewListResult_TotalPages(t *testing.T) {
	params := ListParams{Page: 1, Limit: 10}

	tests := []struct {
		name  string
		total int64
		want  int
	}{
		{"no rows means no pages", 0, 0},
		{"exact multiple", 20, 2},
		{"partial last page rounds up", 21, 3},
		{"fewer rows than one page", 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewListResult(nil, tt.total, params)
			if r.TotalPages != tt.want {
				t.Errorf("TotalPages = %d, want %d", r.TotalPages, tt.want)
			}
			if r.Results == nil {
				t.Error("Results must never be nil in the envelope")
			}
		})
	}
}

// An out-of-range page keeps the requested page number and the true
// totals; it is not clamped back to page 1.
func TestNewListResult_OutOfRangePage(t *testing.T) {
	params := ListParams{Page: 3, Limit: 10}
	r := NewListResult([]*Work{}, 5, params)

	if r.CurrentPage != 3 {
		t.Errorf("CurrentPage = %d, want 3", r.CurrentPage)
	}
	if r.Total != 5 {
		t.Errorf("Total = %d, want 5", r.Total)
	}
	if r.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", r.TotalPages)
	}
	if len(r.Results) != 0 {
		t.Errorf("Results length = %d, want 0", len(r.Results))
	}
}

func TestWork_Visibility(t *testing.T) {
	pub := &Work{UserID: "alice"}
	if !pub.PubliclyVisible() {
		t.Error("plain work must be publicly visible")
	}

	for _, w := range []*Work{
		{UserID: "alice", IsPrivate: true},
		{UserID: "alice", IsTrash: true},
		{UserID: "alice", IsDeleted: true},
	} {
		if w.PubliclyVisible() {
			t.Errorf("work %+v must not be publicly visible", w)
		}
	}

	private := &Work{UserID: "alice", IsPrivate: true}
	if !private.VisibleTo("alice") {
		t.Error("owner must see their private work")
	}
	if private.VisibleTo("bob") {
		t.Error("private work must be hidden from non-owners")
	}

	trashed := &Work{UserID: "alice", IsTrash: true}
	if trashed.VisibleTo("alice") {
		t.Error("trashed work is hidden from the fetch path, even for the owner")
	}
}
