package catalog

import (
	"strings"

	"github.com/spf13/cast"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// PageQuery carries a coerced search/pagination request. Build it with
// NewPageQuery so untrusted input is always clamped.
type PageQuery struct {
	Search string
	Page   int
	Take   int
}

// NewPageQuery coerces raw query parameters into a safe PageQuery.
// Pages below 1 are clamped to 1. A page size that is not a valid number
// falls back to DefaultPageSize, valid values are clamped to
// [1, MaxPageSize].
func NewPageQuery(search, page, pageSize string) PageQuery {
	p, err := cast.ToIntE(strings.TrimSpace(page))
	if err != nil || p < 1 {
		p = 1
	}

	take, err := cast.ToIntE(strings.TrimSpace(pageSize))
	if err != nil {
		take = DefaultPageSize
	}
	if take < 1 {
		take = 1
	}
	if take > MaxPageSize {
		take = MaxPageSize
	}

	return PageQuery{
		Search: strings.TrimSpace(search),
		Page:   p,
		Take:   take,
	}
}

// Skip returns the offset into the ordered result set.
func (q PageQuery) Skip() int {
	return (q.Page - 1) * q.Take
}

// ApplyFilter adds the search predicate to a product query. An empty
// search term matches all products. Otherwise description, brand, model
// and code are matched as case-insensitive substrings while tags require
// an exact element match.
func (q PageQuery) ApplyFilter(db *gorm.DB) *gorm.DB {
	term := strings.TrimSpace(q.Search)
	if term == "" {
		return db
	}
	pattern := "%" + term + "%"
	return db.Where(
		"description ILIKE ? OR brand ILIKE ? OR model ILIKE ? OR code ILIKE ? OR ? = ANY(tags)",
		pattern, pattern, pattern, pattern, term,
	)
}

// ProductOrder is the fixed catalog ordering: ascending item number with
// missing numbers last, newest first as tiebreak.
const ProductOrder = "item_number ASC NULLS LAST, created_at DESC"

// TotalPages is never zero, an empty result still renders one page.
func TotalPages(total int64, take int) int64 {
	if take < 1 {
		take = 1
	}
	pages := (total + int64(take) - 1) / int64(take)
	if pages < 1 {
		pages = 1
	}
	return pages
}
