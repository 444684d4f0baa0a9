package repository

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stemsi/qboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepository_LazyCreation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "questions.json")
	repo := NewFileRepository(path)

	_, err := os.Stat(filepath.Dir(path))
	require.True(t, os.IsNotExist(err), "constructor must not touch the filesystem")

	set, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, set.IsEmpty())
	assert.NotNil(t, set.Questions)
	assert.NotNil(t, set.Revealed)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"questions":[],"revealed":[]}`, string(raw))
}

func TestFileRepository_RoundTripPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	repo := NewFileRepository(path)
	ctx := context.Background()

	want := model.QuestionSet{Questions: []string{"Q1", "Q2 ☁"}, Revealed: []bool{true, false}}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"questions\": [")
}

func TestFileRepository_SeedDoesNotClobberExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"questions":["kept"],"revealed":[false]}`), 0o644))

	got, err := NewFileRepository(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, got.Questions)
}

func TestFileRepository_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := NewFileRepository(path).Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptData)
}

func TestFileRepository_NullFieldsLoadAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	got, err := NewFileRepository(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Questions)
	assert.Equal(t, []bool{}, got.Revealed)
}

func TestFileRepository_ConcurrentSavesLeaveWholeDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	repo := NewFileRepository(path)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			qs := make([]string, n)
			for j := range qs {
				qs[j] = "q"
			}
			_ = repo.Save(ctx, model.QuestionSet{Questions: qs, Revealed: make([]bool, n)})
		}(i)
	}
	wg.Wait()

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(got.Questions), len(got.Revealed))

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".questions-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileRepository_CanceledContext(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "questions.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Save(ctx, model.EmptyQuestionSet()), context.Canceled)
}
