package service

import (
	"fmt"
	"net/url"

	"github.com/mmcdole/cardgrid/internal/domain"
)

// CacheKey returns the page cache key for a query. It has the same shape as
// the browse location so cached pages can be inspected by location.
func CacheKey(q domain.CardQuery) string {
	return fmt.Sprintf("page=%d&limit=%d&search=%s", q.Page, q.Limit, url.QueryEscape(q.Search))
}
