package utils

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// ClampPerPage keeps list sizes inside what the dashboard tables request.
func ClampPerPage(perPage, fallback, max int) int {
	if perPage < 1 {
		return fallback
	}
	if perPage > max {
		return max
	}
	return perPage
}
