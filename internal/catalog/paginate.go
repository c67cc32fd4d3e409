// Package catalog holds the pure question-catalog logic: paging, search,
// category resolution and quiz question selection.
package catalog

// DefaultPageSize is the number of questions per page.
const DefaultPageSize = 10

// Paginate returns the 1-based page of items. Bounds are clamped, so a page past
// the end yields an empty slice. page < 1 or pageSize < 1 also yields an empty slice.
// The returned slice shares its backing array with items.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return []T{}
	}
	// compare page counts first; (page-1)*pageSize can overflow
	pages := len(items) / pageSize
	if len(items)%pageSize != 0 {
		pages++
	}
	if page-1 >= pages {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := start + min(pageSize, len(items)-start)
	return items[start:end]
}
