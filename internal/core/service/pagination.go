package service

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// normalizePage clamps a 1-based page and its size to sane bounds.
func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// totalPages is ceil(total/size).
func totalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

func allOrEmpty(v string) string {
	if v == "all" {
		return ""
	}
	return v
}
