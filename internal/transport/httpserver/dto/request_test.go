package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penhub-service/internal/domain"
	"penhub-service/internal/validator"
)

func newTestValidator() *validator.Validator {
	return validator.New()
}

// TestSearchWorksRequest_Validation_Valid tests valid search requests.
func TestSearchWorksRequest_Validation_Valid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name string
		req  SearchWorksRequest
	}{
		{
			name: "empty request",
			req:  SearchWorksRequest{},
		},
		{
			name: "query only",
			req:  SearchWorksRequest{Query: "red button"},
		},
		{
			name: "full request",
			req: SearchWorksRequest{
				Query: "css grid",
				Tag:   "layout",
				Sort:  "popular",
				Order: "desc",
				Page:  2,
				Limit: 20,
			},
		},
		{
			name: "top alias accepted",
			req:  SearchWorksRequest{Sort: "top"},
		},
		{
			name: "max limit",
			req:  SearchWorksRequest{Page: 1, Limit: 50},
		},
		{
			name: "query at max length",
			req:  SearchWorksRequest{Query: string(make([]byte, 200))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, v.Validate(&tt.req))
		})
	}
}

// TestSearchWorksRequest_Validation_Invalid tests invalid search requests.
func TestSearchWorksRequest_Validation_Invalid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name        string
		req         SearchWorksRequest
		expectField string
		expectTag   string
	}{
		{
			name:        "query too long",
			req:         SearchWorksRequest{Query: string(make([]byte, 201))},
			expectField: "q",
			expectTag:   "max",
		},
		{
			name:        "invalid sort key",
			req:         SearchWorksRequest{Sort: "newest"},
			expectField: "sort",
			expectTag:   "oneof",
		},
		{
			name:        "invalid order",
			req:         SearchWorksRequest{Order: "random"},
			expectField: "order",
			expectTag:   "oneof",
		},
		{
			name:        "negative page",
			req:         SearchWorksRequest{Page: -1},
			expectField: "page",
			expectTag:   "min",
		},
		{
			name:        "limit too large",
			req:         SearchWorksRequest{Limit: 51},
			expectField: "limit",
			expectTag:   "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			require.Error(t, err)

			validationErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "expected ValidationErrors type")
			require.NotEmpty(t, validationErrs)

			found := false
			for _, ve := range validationErrs {
				if ve.Field == tt.expectField {
					found = true
					assert.Equal(t, tt.expectTag, ve.Tag)
				}
			}
			assert.True(t, found, "expected error for field %s", tt.expectField)
		})
	}
}

// TestSearchWorksRequest_ToListParams tests conversion to domain params.
func TestSearchWorksRequest_ToListParams(t *testing.T) {
	tests := []struct {
		name     string
		req      SearchWorksRequest
		expected domain.ListParams
	}{
		{
			name: "empty request uses search defaults",
			req:  SearchWorksRequest{},
			expected: domain.ListParams{
				Privacy: domain.PrivacyAll,
				Sort:    domain.SortRecent,
				Order:   domain.SortOrderDesc,
				Page:    1,
				Limit:   domain.DefaultSearchLimit,
			},
		},
		{
			name: "full request converts",
			req: SearchWorksRequest{
				Query: "red button",
				Tag:   "css",
				Sort:  "popular",
				Order: "asc",
				Page:  3,
				Limit: 25,
			},
			expected: domain.ListParams{
				Query:   "red button",
				Tag:     "css",
				Privacy: domain.PrivacyAll,
				Sort:    domain.SortPopular,
				Order:   domain.SortOrderAsc,
				Page:    3,
				Limit:   25,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.req.ToListParams())
		})
	}
}

// TestFeedRequest_ToListParams tests the feed pagination defaults.
func TestFeedRequest_ToListParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := FeedRequest{}
		params := req.ToListParams()

		assert.Equal(t, 1, params.Page)
		assert.Equal(t, domain.DefaultFeedPageSize, params.Limit)
		assert.Equal(t, domain.SortRecent, params.Sort)
	})

	t.Run("explicit pagination", func(t *testing.T) {
		req := FeedRequest{Page: 4, Limit: 12}
		params := req.ToListParams()

		assert.Equal(t, 4, params.Page)
		assert.Equal(t, 12, params.Limit)
	})
}

// TestMyWorksRequest_ToListParams tests the view-mode page sizing.
func TestMyWorksRequest_ToListParams(t *testing.T) {
	tests := []struct {
		name      string
		req       MyWorksRequest
		wantLimit int
	}{
		{
			name:      "default is card size",
			req:       MyWorksRequest{},
			wantLimit: domain.DefaultCardPageSize,
		},
		{
			name:      "card view",
			req:       MyWorksRequest{View: "card"},
			wantLimit: domain.DefaultCardPageSize,
		},
		{
			name:      "table view",
			req:       MyWorksRequest{View: "table"},
			wantLimit: domain.DefaultTablePageSize,
		},
		{
			name:      "explicit limit wins over view",
			req:       MyWorksRequest{View: "table", Limit: 30},
			wantLimit: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLimit, tt.req.ToListParams().Limit)
		})
	}

	t.Run("privacy filter carried", func(t *testing.T) {
		req := MyWorksRequest{Privacy: "private"}
		assert.Equal(t, domain.PrivacyPrivate, req.ToListParams().Privacy)
	})
}

// TestMyWorksRequest_Validation tests privacy and view enums.
func TestMyWorksRequest_Validation(t *testing.T) {
	v := newTestValidator()

	valid := []MyWorksRequest{
		{},
		{Privacy: "all"},
		{Privacy: "public"},
		{Privacy: "private"},
		{View: "card"},
		{View: "table"},
	}
	for _, req := range valid {
		assert.NoError(t, v.Validate(&req))
	}

	invalid := []MyWorksRequest{
		{Privacy: "hidden"},
		{View: "grid"},
		{Page: -2},
		{Limit: 100},
	}
	for _, req := range invalid {
		assert.Error(t, v.Validate(&req))
	}
}

// TestWorkPayload_Validation tests the create/update body rules.
func TestWorkPayload_Validation(t *testing.T) {
	v := newTestValidator()

	t.Run("minimal payload valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(&WorkPayload{}))
	})

	t.Run("full payload valid", func(t *testing.T) {
		payload := WorkPayload{
			Title:        "my pen",
			Description:  "a pen",
			HTMLCode:     "<div></div>",
			CSSCode:      "div { color: red; }",
			JSCode:       "console.log(1)",
			ResourcesCSS: []string{"https://cdn.example.com/reset.css"},
			ResourcesJS:  []string{"https://cdn.example.com/lib.js"},
			IsPrivate:    true,
			Tags:         []string{"css", "animation"},
		}
		assert.NoError(t, v.Validate(&payload))
	})

	t.Run("invalid resource url", func(t *testing.T) {
		payload := WorkPayload{ResourcesJS: []string{"not a url"}}
		assert.Error(t, v.Validate(&payload))
	})

	t.Run("empty tag rejected", func(t *testing.T) {
		payload := WorkPayload{Tags: []string{""}}
		assert.Error(t, v.Validate(&payload))
	})

	t.Run("too many tags", func(t *testing.T) {
		tags := make([]string, 11)
		for i := range tags {
			tags[i] = "t"
		}
		assert.Error(t, v.Validate(&WorkPayload{Tags: tags}))
	})
}

// TestCommentPayload_Validation tests the comment body rules.
func TestCommentPayload_Validation(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Validate(&CommentPayload{Content: "nice work"}))
	assert.Error(t, v.Validate(&CommentPayload{}))
	assert.Error(t, v.Validate(&CommentPayload{Content: string(make([]byte, 1001))}))
}
