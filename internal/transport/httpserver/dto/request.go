// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import "penhub-service/internal/domain"

// SearchWorksRequest represents the query parameters of the public
// search listing.
type SearchWorksRequest struct {
	Query string `query:"q" validate:"max=200"`
	Tag   string `query:"tag" validate:"max=50"`
	Sort  string `query:"sort" validate:"omitempty,oneof=recent created updated popular top"`
	Order string `query:"order" validate:"omitempty,oneof=asc desc"`
	Page  int    `query:"page" validate:"omitempty,min=1"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

// ToListParams converts the request to domain.ListParams with the
// search defaults applied.
func (r *SearchWorksRequest) ToListParams() domain.ListParams {
	params := domain.DefaultListParams()
	params.Limit = domain.DefaultSearchLimit

	params.Query = r.Query
	params.Tag = r.Tag

	if r.Sort != "" {
		params.Sort = domain.SortKey(r.Sort)
	}
	if r.Order != "" {
		params.Order = domain.SortOrder(r.Order)
	}
	if r.Page > 0 {
		params.Page = r.Page
	}
	if r.Limit > 0 {
		params.Limit = r.Limit
	}

	return params
}

// FeedRequest represents the query parameters of the trending and
// following feeds. Feeds expose only pagination; ordering is fixed by
// the endpoint.
type FeedRequest struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=50"`
}

// ToListParams converts the request to domain.ListParams with the
// feed defaults applied.
func (r *FeedRequest) ToListParams() domain.ListParams {
	params := domain.DefaultListParams()

	if r.Page > 0 {
		params.Page = r.Page
	}
	if r.Limit > 0 {
		params.Limit = r.Limit
	}

	return params
}

// MyWorksRequest represents the query parameters of the owner's
// my-works listing. The view mode only picks the default page size:
// card lays out fewer items per page than the table.
type MyWorksRequest struct {
	Query   string `query:"q" validate:"max=200"`
	Tag     string `query:"tag" validate:"max=50"`
	Privacy string `query:"privacy" validate:"omitempty,oneof=all public private"`
	Sort    string `query:"sort" validate:"omitempty,oneof=recent created updated popular top"`
	Order   string `query:"order" validate:"omitempty,oneof=asc desc"`
	View    string `query:"view" validate:"omitempty,oneof=card table"`
	Page    int    `query:"page" validate:"omitempty,min=1"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

// ToListParams converts the request to domain.ListParams. An explicit
// limit wins over the view-mode default.
func (r *MyWorksRequest) ToListParams() domain.ListParams {
	params := domain.DefaultListParams()

	params.Limit = domain.DefaultCardPageSize
	if domain.ViewMode(r.View) == domain.ViewTable {
		params.Limit = domain.DefaultTablePageSize
	}

	params.Query = r.Query
	params.Tag = r.Tag

	if r.Privacy != "" {
		params.Privacy = domain.Privacy(r.Privacy)
	}
	if r.Sort != "" {
		params.Sort = domain.SortKey(r.Sort)
	}
	if r.Order != "" {
		params.Order = domain.SortOrder(r.Order)
	}
	if r.Page > 0 {
		params.Page = r.Page
	}
	if r.Limit > 0 {
		params.Limit = r.Limit
	}

	return params
}

// WorkPayload is the request body for creating or updating a work.
type WorkPayload struct {
	Title        string   `json:"title" validate:"max=120"`
	Description  string   `json:"description" validate:"max=1000"`
	HTMLCode     string   `json:"html_code"`
	CSSCode      string   `json:"css_code"`
	JSCode       string   `json:"js_code"`
	ResourcesCSS []string `json:"resources_css" validate:"omitempty,max=20,dive,url"`
	ResourcesJS  []string `json:"resources_js" validate:"omitempty,max=20,dive,url"`
	IsPrivate    bool     `json:"is_private"`
	Tags         []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
}

// ToDomainWork converts the payload to a domain.Work carrying the
// editable fields.
func (p *WorkPayload) ToDomainWork() *domain.Work {
	return &domain.Work{
		Title:        p.Title,
		Description:  p.Description,
		HTMLCode:     p.HTMLCode,
		CSSCode:      p.CSSCode,
		JSCode:       p.JSCode,
		ResourcesCSS: p.ResourcesCSS,
		ResourcesJS:  p.ResourcesJS,
		IsPrivate:    p.IsPrivate,
	}
}

// CommentPayload is the request body for posting a comment.
type CommentPayload struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
