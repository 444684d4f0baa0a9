package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/stemsi/qboard/internal/model"
)

// FileRepository stores the QuestionSet as a pretty-printed JSON document.
// The directory and the seed document are created on first use.
type FileRepository struct {
	path string
	// mu serializes file writes so a reader never sees a half-written
	// document. Ordering across requests is still last-write-wins.
	mu sync.Mutex
}

// NewFileRepository creates a FileRepository for path. Nothing touches the
// filesystem until the first Load or Save.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) Load(ctx context.Context) (model.QuestionSet, error) {
	if err := ctx.Err(); err != nil {
		return model.QuestionSet{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensure(); err != nil {
		return model.QuestionSet{}, err
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		return model.QuestionSet{}, fmt.Errorf("read %s: %w", r.path, err)
	}
	return decodeQuestionSet(raw)
}

func (r *FileRepository) Save(ctx context.Context, set model.QuestionSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	raw, err := encodeQuestionSet(set)
	if err != nil {
		return fmt.Errorf("encode question set: %w", err)
	}
	return r.writeAtomic(raw)
}

func (r *FileRepository) Driver() string { return "file" }

// ensure creates the data directory and seeds an empty document if absent.
func (r *FileRepository) ensure() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", r.path, err)
	}

	raw, err := encodeQuestionSet(model.EmptyQuestionSet())
	if err != nil {
		return fmt.Errorf("encode seed: %w", err)
	}
	return r.writeAtomic(raw)
}

// writeAtomic writes through a temp file in the same directory and renames
// it over the document.
func (r *FileRepository) writeAtomic(raw []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".questions-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}
