package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"
)

func TestStoreFS(t *testing.T) {
	store, err := NewStoreFS(logs.NewTestingLog(t), t.TempDir())
	require.NoError(t, err)

	n, err := store.Put("inscricoes/7/certidaoBatismo", strings.NewReader("hello"))
	require.NoError(t, err)
	require.Equal(t, int64(5), n)

	r, size, err := store.Open("inscricoes/7/certidaoBatismo")
	require.NoError(t, err)
	require.Equal(t, int64(5), size)
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	r.Close()
	require.Equal(t, "hello", string(content))

	// Overwrite replaces, never appends
	_, err = store.Put("inscricoes/7/certidaoBatismo", strings.NewReader("x"))
	require.NoError(t, err)
	r, size, err = store.Open("inscricoes/7/certidaoBatismo")
	require.NoError(t, err)
	require.Equal(t, int64(1), size)
	r.Close()

	_, _, err = store.Open("inscricoes/7/documentoPadrinho")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete("inscricoes/7/certidaoBatismo"))
	require.NoError(t, store.Delete("inscricoes/7/certidaoBatismo"))
	_, _, err = store.Open("inscricoes/7/certidaoBatismo")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Put("../escape", strings.NewReader("nope"))
	require.Error(t, err)
}
