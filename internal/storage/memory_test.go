package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Upload(ctx, "attachments/u1/report.pdf", "application/pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	r, err := store.Open(ctx, "attachments/u1/report.pdf")
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "attachments/u1/report.pdf"))
	assert.Zero(t, store.Len())
}

func TestMemoryStore_Missing(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Open(ctx, "nope")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "nope"), ErrObjectNotFound)
}
