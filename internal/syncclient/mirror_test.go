package syncclient

import (
	"path/filepath"
	"testing"

	"github.com/stemsi/qboard/internal/config"
	"github.com/stemsi/qboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMirror_StoresJSONStrings(t *testing.T) {
	m := NewMemoryMirror()
	require.NoError(t, writeMirror(m, model.QuestionSet{Questions: []string{"a"}, Revealed: []bool{true}}))

	q, ok, err := m.Get(config.StorageKey.MirrorQuestions())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["a"]`, q)

	r, ok, err := m.Get(config.StorageKey.MirrorRevealed())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[true]`, r)
}

func TestReadMirror_MissingKeysAreEmpty(t *testing.T) {
	set, err := readMirror(NewMemoryMirror())
	require.NoError(t, err)
	assert.True(t, set.IsEmpty())
	assert.NotNil(t, set.Revealed)
}

func TestReadMirror_PadsMissingFlags(t *testing.T) {
	m := NewMemoryMirror()
	require.NoError(t, m.Set(config.StorageKey.MirrorQuestions(), `["a","b"]`))

	set, err := readMirror(m)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false}, set.Revealed)
}

func TestBadgerMirror_PersistsAcrossOpens(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mirror")
	want := model.QuestionSet{Questions: []string{"x", "y"}, Revealed: []bool{false, true}}

	m, err := OpenBadgerMirror(dir)
	require.NoError(t, err)
	_, ok, err := m.Get(config.StorageKey.MirrorQuestions())
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, writeMirror(m, want))
	require.NoError(t, m.Close())

	m, err = OpenBadgerMirror(dir)
	require.NoError(t, err)
	defer m.Close()

	got, err := readMirror(m)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}
