package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStoreWriteOnce(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()
	key := "documents/2023/10/test.txt"

	require.NoError(t, store.Put(ctx, key, "text/plain", strings.NewReader("first")))
	require.Error(t, store.Put(ctx, key, "text/plain", strings.NewReader("second")))

	rc, err := store.Get(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "first", string(data))
}

func TestLocalStoreDelete(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()
	key := "documents/2023/10/gone.txt"

	require.NoError(t, store.Put(ctx, key, "text/plain", strings.NewReader("x")))
	require.NoError(t, store.Delete(ctx, key))
	_, err := store.Get(ctx, key)
	require.Error(t, err)
}

func TestNewStorageKeyShape(t *testing.T) {
	key := NewStorageKey("Balance Sheet.XLSX")
	require.True(t, strings.HasPrefix(key, "documents/"))
	require.True(t, strings.HasSuffix(key, ".XLSX"))
	require.NotEqual(t, key, NewStorageKey("Balance Sheet.XLSX"))
}
