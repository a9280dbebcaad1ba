package service

// PageMeta describes the position of a page within a paginated result set.
type PageMeta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalPosts  int64 `json:"totalPosts"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewPageMeta computes pagination metadata for a 1-based page.
func NewPageMeta(page, limit int, total int64) *PageMeta {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &PageMeta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalPosts:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
