package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockyard/internal/domain/product"
)

func TestResolvePage(t *testing.T) {
	t.Run("fresh identity always lands on page one", func(t *testing.T) {
		cache := NewCursorCache()

		for _, requested := range []int{-3, 0, 1, 2, 99} {
			page, cursor := cache.ResolvePage("alice", requested)
			assert.Equal(t, 1, page)
			assert.Empty(t, cursor)
		}
	})

	t.Run("known cursor unlocks the next page", func(t *testing.T) {
		cache := NewCursorCache()
		cache.CommitScan("alice", 1, "", Page{}, "cursor-2")

		page, cursor := cache.ResolvePage("alice", 2)

		assert.Equal(t, 2, page)
		assert.Equal(t, product.Cursor("cursor-2"), cursor)
	})

	t.Run("requests past the frontier clamp to it", func(t *testing.T) {
		cache := NewCursorCache()
		cache.CommitScan("alice", 1, "", Page{}, "cursor-2")
		cache.CommitScan("alice", 2, "cursor-2", Page{}, "cursor-3")

		page, cursor := cache.ResolvePage("alice", 50)

		assert.Equal(t, 3, page)
		assert.Equal(t, product.Cursor("cursor-3"), cursor)
	})

	t.Run("cursor lists are per identity", func(t *testing.T) {
		cache := NewCursorCache()
		cache.CommitScan("alice", 1, "", Page{}, "cursor-2")

		page, cursor := cache.ResolvePage("bob", 2)

		assert.Equal(t, 1, page)
		assert.Empty(t, cursor)
	})
}

func TestCommitScan(t *testing.T) {
	t.Run("page one result is never cached", func(t *testing.T) {
		cache := NewCursorCache()

		cache.CommitScan("alice", 1, "", Page{LastPage: true}, "")

		_, ok := cache.GetPage("")
		assert.False(t, ok)
	})

	t.Run("later pages are cached under their start cursor", func(t *testing.T) {
		cache := NewCursorCache()
		entry := Page{Records: []product.Product{{Name: "dining chair"}}, LastPage: true}

		cache.CommitScan("alice", 2, "cursor-2", entry, "")

		got, ok := cache.GetPage("cursor-2")
		assert.True(t, ok)
		assert.Equal(t, entry, got)
	})

	t.Run("re-reading an earlier page does not duplicate cursors", func(t *testing.T) {
		cache := NewCursorCache()
		cache.CommitScan("alice", 1, "", Page{}, "cursor-2")
		cache.CommitScan("alice", 2, "cursor-2", Page{}, "cursor-3")

		// A repeat scan of page 1 returns the same continuation cursor.
		cache.CommitScan("alice", 1, "", Page{}, "cursor-2")

		assert.Equal(t, 3, cache.KnownPages("alice"))
	})

	t.Run("final page appends no cursor", func(t *testing.T) {
		cache := NewCursorCache()

		cache.CommitScan("alice", 1, "", Page{LastPage: true}, "")

		assert.Equal(t, 1, cache.KnownPages("alice"))
	})

	t.Run("page cache is shared across identities", func(t *testing.T) {
		cache := NewCursorCache()
		entry := Page{Records: []product.Product{{Name: "bar stool"}}}

		cache.CommitScan("alice", 2, "cursor-2", entry, "")

		got, ok := cache.GetPage("cursor-2")
		assert.True(t, ok)
		assert.Equal(t, entry, got)
		// bob has not discovered the cursor and cannot address the page yet,
		// but the entry is already there once the cursor is known.
		assert.Equal(t, 1, cache.KnownPages("bob"))
	})
}
