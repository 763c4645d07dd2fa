package queries

// PageSize is fixed for every room list.
const PageSize = 8

// TotalPages never returns less than 1, so an empty list still has a page.
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	if count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageBounds returns the half-open slice range [(page-1)*size, page*size)
// limited to count.
func PageBounds(page, pageSize, count int) (int, int) {
	if page < 1 || pageSize <= 0 {
		return 0, 0
	}
	start := (page - 1) * pageSize
	if start > count {
		start = count
	}
	end := start + pageSize
	if end > count {
		end = count
	}
	return start, end
}

func Paginate[T any](items []T, page, pageSize int) []T {
	start, end := PageBounds(page, pageSize, len(items))
	return items[start:end]
}
