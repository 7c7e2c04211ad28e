package browse

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParseLocation reads page, limit and search from a query string such as
// "?page=2&limit=20&search=bolt". A leading "?" and a full URL are both
// accepted. Each field falls back independently: page to 1, limit to
// defaultLimit and search to "" when absent, non-numeric or below 1.
func ParseLocation(location string, defaultLimit int) State {
	state := NewState(defaultLimit)

	values := parseQuery(location)
	if values == nil {
		return state
	}

	if page, ok := positiveInt(values.Get("page")); ok {
		state.Page = page
	}
	if limit, ok := positiveInt(values.Get("limit")); ok {
		state.Limit = limit
	}
	state.Search = values.Get("search")

	return state
}

// Location encodes the state as "page=P&limit=L&search=S". The key order is
// fixed so the string is stable across writes.
func (s State) Location() string {
	return fmt.Sprintf("page=%d&limit=%d&search=%s", s.Page, s.Limit, url.QueryEscape(s.Search))
}

// parseQuery extracts query values from a bare query string or a URL
func parseQuery(location string) url.Values {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil
	}

	if i := strings.IndexByte(location, '?'); i >= 0 {
		location = location[i+1:]
	}
	if i := strings.IndexByte(location, '#'); i >= 0 {
		location = location[:i]
	}

	values, err := url.ParseQuery(location)
	if err != nil && len(values) == 0 {
		return nil
	}
	return values
}

func positiveInt(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
