// Package catalog serves the paginated product catalog with availability
// attached. Repeat page requests are answered from a cursor cache instead of
// re-scanning storage.
package catalog

import (
	"sync"

	"stockyard/internal/domain/product"
)

// Page is one cached catalog page together with its last-page flag, so a
// cache hit reproduces the first response for the page exactly.
type Page struct {
	Records  []product.Product
	LastPage bool
}

// CursorCache tracks, per requesting identity, the ordered list of scan
// cursors discovered so far, plus a cursor-to-page cache shared across
// identities. cursors[identity][i] is the cursor that retrieves page i+2;
// page 1 needs no cursor. Both structures grow monotonically within the
// process lifetime; nothing is ever evicted.
type CursorCache struct {
	mu      sync.Mutex
	cursors map[string][]product.Cursor
	pages   map[product.Cursor]Page
}

// NewCursorCache creates an empty cursor cache.
func NewCursorCache() *CursorCache {
	return &CursorCache{
		cursors: make(map[string][]product.Cursor),
		pages:   make(map[product.Cursor]Page),
	}
}

// ResolvePage clamps the requested page to at most one past the identity's
// known pages and returns the effective page number with its start cursor.
// Page 1 (and any request clamped to it) has an empty cursor.
func (c *CursorCache) ResolvePage(identity string, requested int) (int, product.Cursor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	known := c.cursors[identity]

	page := requested
	if page < 1 {
		page = 1
	}
	if maxPage := len(known) + 1; page > maxPage {
		page = maxPage
	}

	if page < 2 {
		return page, ""
	}
	return page, known[page-2]
}

// GetPage returns the cached page for a cursor. Pages reached without a
// cursor (page 1) are never cached.
func (c *CursorCache) GetPage(cursor product.Cursor) (Page, bool) {
	if cursor == "" {
		return Page{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	page, ok := c.pages[cursor]
	return page, ok
}

// CommitScan records a finished scan: the page is cached under its start
// cursor, and the scan's continuation cursor is appended to the identity's
// list when it is the next unseen one (re-reads of earlier pages must not
// corrupt the order).
func (c *CursorCache) CommitScan(identity string, page int, startCursor product.Cursor, result Page, next product.Cursor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if next != "" && page-2 == len(c.cursors[identity])-1 {
		c.cursors[identity] = append(c.cursors[identity], next)
	}

	if startCursor != "" {
		c.pages[startCursor] = result
	}
}

// KnownPages returns how many pages the identity has discovered so far.
func (c *CursorCache) KnownPages(identity string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cursors[identity]) + 1
}
