package shared

import (
	"net/http"
	"strconv"
)

// ParsePageNumber reads the 1-based "page" query parameter. The bool reports
// whether the parameter was present at all; a present but malformed value
// comes back as 0 so the caller can reject it.
func ParsePageNumber(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 0, false
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true
	}
	return page, true
}
