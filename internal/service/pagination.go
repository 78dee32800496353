package service

// clampPage normalizes paging inputs: page starts at 1, perPage defaults to
// 20 and is capped at 100.
func clampPage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

// totalPages computes the page count for a result set.
func totalPages(total, perPage int) int {
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return pages
}
