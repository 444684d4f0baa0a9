package syncclient

import (
	"encoding/json"
	"sync"

	"github.com/stemsi/qboard/internal/config"
	"github.com/stemsi/qboard/internal/model"
)

// Mirror is the client-local persistent store: string values under string
// keys, read at session start and written after every mutation.
type Mirror interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// MemoryMirror is a Mirror that lives only as long as the process.
type MemoryMirror struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryMirror creates an empty MemoryMirror.
func NewMemoryMirror() *MemoryMirror {
	return &MemoryMirror{values: make(map[string]string)}
}

func (m *MemoryMirror) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryMirror) Set(key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

// readMirror decodes the mirrored set. Missing or undecodable entries read
// as empty, and flags are aligned to the questions.
func readMirror(m Mirror) (model.QuestionSet, error) {
	set := model.EmptyQuestionSet()

	raw, ok, err := m.Get(config.StorageKey.MirrorQuestions())
	if err != nil {
		return set, err
	}
	if ok {
		var questions []string
		if json.Unmarshal([]byte(raw), &questions) == nil {
			set.Questions = questions
		}
	}

	raw, ok, err = m.Get(config.StorageKey.MirrorRevealed())
	if err != nil {
		return set.Normalize(), err
	}
	if ok {
		var revealed []bool
		if json.Unmarshal([]byte(raw), &revealed) == nil {
			set.Revealed = revealed
		}
	}
	return set.Normalize(), nil
}

// writeMirror stores both arrays as JSON strings.
func writeMirror(m Mirror, set model.QuestionSet) error {
	set = set.Normalize()
	questions, err := json.Marshal(set.Questions)
	if err != nil {
		return err
	}
	revealed, err := json.Marshal(set.Revealed)
	if err != nil {
		return err
	}
	if err := m.Set(config.StorageKey.MirrorQuestions(), string(questions)); err != nil {
		return err
	}
	return m.Set(config.StorageKey.MirrorRevealed(), string(revealed))
}
