package dto

// PageRequest - параметры пагинации из query
type PageRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// PageMeta - метаданные страницы в ответах со списками
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewPageMeta(total int64, page, pageSize int) PageMeta {
	if pageSize < 1 {
		pageSize = 20
	}
	if page < 1 {
		page = 1
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return PageMeta{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// MessageResponse - простой ответ об успешной операции
type MessageResponse struct {
	Message string `json:"message"`
}
