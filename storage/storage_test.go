package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valkit/valkit/valerrors"
	"github.com/valkit/valkit/value"
)

func testDoc(t *testing.T) value.Value {
	t.Helper()
	doc, err := value.FromAny(map[string]any{"id": "x", "count": 3})
	require.NoError(t, err)
	return doc
}

func TestWriteReadRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	doc := testDoc(t)
	require.NoError(t, s.Write("report", doc))

	got, err := s.Read("report")
	require.NoError(t, err)
	assert.True(t, value.Equal(doc, got))
}

func TestWrite_Replaces(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Write("doc", value.String("first")))
	require.NoError(t, s.Write("doc", value.String("second")))

	got, err := s.Read("doc")
	require.NoError(t, err)
	str, _ := got.AsString()
	assert.Equal(t, "second", str)
}

func TestRead_NotFound(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Read("ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, valerrors.ErrNotFound))
}

func TestExistsListDelete(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Write("b", testDoc(t)))
	require.NoError(t, s.Write("a", testDoc(t)))

	assert.True(t, s.Exists("a"))
	assert.False(t, s.Exists("c"))

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, s.Delete("a"))
	assert.False(t, s.Exists("a"))

	err = s.Delete("a")
	assert.True(t, errors.Is(err, valerrors.ErrNotFound))
}

func TestBackupAndPrune(t *testing.T) {
	clock := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	s, err := New(t.TempDir(),
		WithMaxBackups(2),
		WithClock(func() time.Time { return clock }))
	require.NoError(t, err)

	require.NoError(t, s.Write("doc", testDoc(t)))

	for i := 0; i < 4; i++ {
		_, err := s.Backup("doc")
		require.NoError(t, err)
		clock = clock.Add(time.Minute)
	}

	backups, err := s.Backups("doc")
	require.NoError(t, err)
	// Pruned down to the retention cap, keeping the newest.
	require.Len(t, backups, 2)
	assert.Contains(t, backups[0], "20240601-000200")
	assert.Contains(t, backups[1], "20240601-000300")
}

func TestBackup_MissingDocument(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Backup("ghost")
	assert.True(t, errors.Is(err, valerrors.ErrNotFound))
}

func TestBackups_NoneYet(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	backups, err := s.Backups("doc")
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestNew_EmptyBasePath(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, valerrors.ErrConfig))
}
