package domain

// SortKey selects the ordering of a listing.
type SortKey string

const (
	SortRecent  SortKey = "recent"
	SortCreated SortKey = "created"
	SortUpdated SortKey = "updated"
	SortPopular SortKey = "popular"
	SortTop     SortKey = "top" // alias for popular kept for older clients
)

// ByPopularity reports whether the key orders by trending score.
func (s SortKey) ByPopularity() bool {
	return s == SortPopular || s == SortTop
}

// SortOrder is the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// ViewMode affects only the default page size of the my-works listing.
type ViewMode string

const (
	ViewCard  ViewMode = "card"
	ViewTable ViewMode = "table"
)

// Page size bounds shared by every listing endpoint.
const (
	MaxPageSize          = 50
	DefaultFeedPageSize  = 4  // trending and following feeds
	DefaultSearchLimit   = 6  // public search
	DefaultCardPageSize  = 6  // my-works card view
	DefaultTablePageSize = 10 // my-works table view
)

// ListParams holds the filter, sort and pagination inputs of one
// listing request. Ephemeral: owned by the request lifecycle.
type ListParams struct {
	Query   string  // free-text keyword filter, tokenized conjunctively
	Tag     string  // restrict to works carrying this tag
	Privacy Privacy // owner-scoped visibility filter

	Sort  SortKey
	Order SortOrder

	Page  int // 1-indexed
	Limit int // items per page
}

// DefaultListParams returns params with the shared defaults applied.
func DefaultListParams() ListParams {
	return ListParams{
		Privacy: PrivacyAll,
		Sort:    SortRecent,
		Order:   SortOrderDesc,
		Page:    1,
		Limit:   DefaultFeedPageSize,
	}
}

// Normalize clamps params into safe bounds. Bound correction, not
// validation: malformed raw input is rejected earlier by the DTO layer.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultFeedPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Sort == "" {
		p.Sort = SortRecent
	}
	if p.Order == "" {
		p.Order = SortOrderDesc
	}
	if p.Privacy == "" {
		p.Privacy = PrivacyAll
	}
}

// Offset calculates the database offset for pagination.
func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Keywords returns the normalized tokens of the query string. Empty
// for a blank query, meaning no keyword filtering.
func (p *ListParams) Keywords() []string {
	return TokenizeKeywords(p.Query)
}

// ListScope couples ListParams with the caller-dependent restrictions
// a repository needs to build the filter set.
//
// OwnerID set: owner-scoped listing (my-works); bypasses the privacy
// restriction but still excludes deleted and trashed works.
// AuthorIDs set: following feed; restricts to those authors on top of
// the public visibility baseline.
// Neither set: public listing.
type ListScope struct {
	Params    ListParams
	OwnerID   string
	AuthorIDs []string
}

// ListResult is the uniform listing envelope.
//
// TotalPages is 0 (not 1) when Total is 0, to distinguish "no pages"
// from "one empty page".
type ListResult struct {
	Results     []*Work `json:"results"`
	Total       int64   `json:"total"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
}

// NewListResult wraps rows and total into the envelope, computing
// TotalPages as ceil(total/limit).
func NewListResult(works []*Work, total int64, params ListParams) *ListResult {
	totalPages := int(total) / params.Limit
	if int(total)%params.Limit > 0 {
		totalPages++
	}

	if works == nil {
		works = []*Work{}
	}

	return &ListResult{
		Results:     works,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: params.Page,
	}
}

// EmptyListResult returns the envelope for a listing known to be empty
// without querying, e.g. a following feed when nobody is followed.
func EmptyListResult(params ListParams) *ListResult {
	return &ListResult{
		Results:     []*Work{},
		Total:       0,
		TotalPages:  0,
		CurrentPage: params.Page,
	}
}
