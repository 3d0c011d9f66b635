package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Page - параметры пагинации, которые хэндлеры получают из ParsePagination
type Page struct {
	Page     int
	PageSize int
}

func (p Page) normalized() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	return p
}

func (p Page) Offset() int {
	n := p.normalized()
	return (n.Page - 1) * n.PageSize
}

func (p Page) Limit() int {
	return p.normalized().PageSize
}

// paginate применяет LIMIT/OFFSET
func paginate(p Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit())
	}
}

// likePattern готовит шаблон для регистронезависимого поиска через LOWER(col) LIKE ?
func likePattern(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}

// isUniqueViolation распознаёт нарушение уникального индекса во всех поддерживаемых драйверах
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value") || // postgres
		strings.Contains(msg, "Duplicate entry") // mysql
}
