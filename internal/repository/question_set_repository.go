package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stemsi/qboard/internal/model"
)

// ErrCorruptData is returned when persisted data cannot be decoded.
var ErrCorruptData = errors.New("stored question set is corrupt")

// QuestionSetRepository persists the single QuestionSet.
// Save fully replaces the stored set; concurrent saves are last-write-wins.
type QuestionSetRepository interface {
	// Load returns the last saved set, or an empty set if nothing was saved.
	Load(ctx context.Context) (model.QuestionSet, error)
	Save(ctx context.Context, set model.QuestionSet) error
	// Driver names the backing store for logs and metrics.
	Driver() string
}

func encodeQuestionSet(set model.QuestionSet) ([]byte, error) {
	return json.MarshalIndent(withEmptySlices(set), "", "  ")
}

func decodeQuestionSet(raw []byte) (model.QuestionSet, error) {
	var set model.QuestionSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return model.QuestionSet{}, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return withEmptySlices(set), nil
}

// withEmptySlices keeps the stored shape verbatim but never emits null arrays.
func withEmptySlices(set model.QuestionSet) model.QuestionSet {
	if set.Questions == nil {
		set.Questions = []string{}
	}
	if set.Revealed == nil {
		set.Revealed = []bool{}
	}
	return set
}
