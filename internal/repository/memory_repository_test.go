package repository

import (
	"context"
	"testing"

	"github.com/stemsi/qboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_StartsEmpty(t *testing.T) {
	set, err := NewMemoryRepository().Load(context.Background())
	require.NoError(t, err)
	assert.True(t, set.Equal(model.EmptyQuestionSet()))
}

func TestMemoryRepository_RoundTripAndIdempotentLoad(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	want := model.QuestionSet{Questions: []string{"A", "B"}, Revealed: []bool{false, true}}

	require.NoError(t, repo.Save(ctx, want))

	first, err := repo.Load(ctx)
	require.NoError(t, err)
	second, err := repo.Load(ctx)
	require.NoError(t, err)

	assert.True(t, want.Equal(first))
	assert.True(t, first.Equal(second))
}

func TestMemoryRepository_IsolatedFromCallerMutation(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	set := model.QuestionSet{Questions: []string{"A"}, Revealed: []bool{false}}
	require.NoError(t, repo.Save(ctx, set))

	set.Questions[0] = "mutated"
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	loaded.Revealed[0] = true

	again, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Questions[0])
	assert.False(t, again.Revealed[0])
}

func TestMemoryRepository_LastWriteWins(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, model.QuestionSet{Questions: []string{"first"}, Revealed: []bool{false}}))
	require.NoError(t, repo.Save(ctx, model.QuestionSet{Questions: []string{"second"}, Revealed: []bool{true}}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, got.Questions)
}
