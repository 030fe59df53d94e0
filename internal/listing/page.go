package listing

// PageInfo is the pagination block attached to list responses.
type PageInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPageInfo derives the pagination block from a total row count.
// TotalPages is never below 1 so that clients see "page 1 of 1" for an
// empty result instead of dividing by zero or rendering NaN.
func NewPageInfo(p Params, total int) PageInfo {
	pages := 1
	if total > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return PageInfo{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: pages,
	}
}

// ClampPage pulls a requested page back into [1, totalPages]. Used after
// deletes so a refetch never asks for a page past the new last page.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		return totalPages
	}
	if page < 1 {
		return 1
	}
	return page
}
