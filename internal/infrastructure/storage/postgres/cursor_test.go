package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
	"stockyard/internal/domain/product"
)

func TestCursorRoundTrip(t *testing.T) {
	lastID := id.MustParse("99999999-9999-9999-9999-999999999999")

	cursor := encodeCursor(lastID)
	require.NotEmpty(t, cursor)

	decoded, err := decodeCursor(cursor)
	require.NoError(t, err)
	assert.Equal(t, lastID, decoded)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	for _, cursor := range []string{"not base64 at all!!", "bm90LWEtdXVpZA"} {
		_, err := decodeCursor(product.Cursor(cursor))
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation), "cursor %q", cursor)
	}
}
