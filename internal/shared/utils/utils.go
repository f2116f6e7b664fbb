package utils

import "strconv"

// ParsePagination đọc page/limit từ query string, clamp về [1, maxLimit]
func ParsePagination(pageStr, limitStr string, defaultLimit, maxLimit int) (page, limit int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
