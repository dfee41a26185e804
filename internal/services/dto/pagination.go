package dto

// PaginationQuery - общие параметры списков (?page=&limit=&sortBy=&sortOrder=)
type PaginationQuery struct {
	Page      int    `form:"page" validate:"omitempty,min=1"`
	Limit     int    `form:"limit" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,max=64"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc ASC DESC"`
}

// PaginatedResponse - конверт всех списков
type PaginatedResponse[T any] struct {
	Data        []T   `json:"data"`
	TotalDocs   int64 `json:"totalDocs"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPaginatedResponse ожидает уже нормализованные page и limit (limit > 0)
func NewPaginatedResponse[T any](data []T, total int64, page, limit int) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &PaginatedResponse[T]{
		Data:        data,
		TotalDocs:   total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
