package board

import (
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/stemsi/qboard/internal/model"
)

var (
	ErrWrongPIN      = errors.New("wrong PIN")
	ErrWrongPassword = errors.New("wrong password")
	ErrLocked        = errors.New("board is locked; unlock face to face first")
	ErrFaceToFace    = errors.New("adding is disabled while face to face")
	ErrNoQuestions   = errors.New("no questions to reveal")
)

// CloudGlyph replaces every visible character of an unrevealed question.
const CloudGlyph = "☁"

// Actions is the state the board drives. *syncclient.Client satisfies it.
type Actions interface {
	Snapshot() model.QuestionSet
	Notice() string
	Add(text string) error
	Reveal(index int) error
	Delete(index int) error
	Clear() error
}

// Entry is one question as it should be shown.
type Entry struct {
	Index    int
	Text     string
	Revealed bool
	// Revealable marks entries a tap would reveal in the current mode.
	Revealable bool
}

// Board applies the gates on top of Actions. Unlocking with the PIN
// switches the session to face-to-face mode: entries can be revealed and
// nothing new can be added. Deletes always need the password.
type Board struct {
	actions Actions
	secrets Secrets

	mu       sync.Mutex
	unlocked bool
}

func New(actions Actions, secrets Secrets) *Board {
	return &Board{actions: actions, secrets: secrets}
}

// Unlocked reports whether the session is in face-to-face mode.
func (b *Board) Unlocked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unlocked
}

// Unlock enters face-to-face mode. It needs at least one question.
func (b *Board) Unlock(pin string) error {
	if b.actions.Snapshot().IsEmpty() {
		return ErrNoQuestions
	}
	if !b.secrets.CheckPIN(pin) {
		return ErrWrongPIN
	}
	b.mu.Lock()
	b.unlocked = true
	b.mu.Unlock()
	return nil
}

// Lock leaves face-to-face mode.
func (b *Board) Lock() {
	b.mu.Lock()
	b.unlocked = false
	b.mu.Unlock()
}

func (b *Board) Add(text string) error {
	if b.Unlocked() {
		return ErrFaceToFace
	}
	return b.actions.Add(text)
}

func (b *Board) Reveal(index int) error {
	if !b.Unlocked() {
		return ErrLocked
	}
	return b.actions.Reveal(index)
}

func (b *Board) Delete(index int, password string) error {
	if !b.secrets.CheckPassword(password) {
		return ErrWrongPassword
	}
	return b.actions.Delete(index)
}

func (b *Board) Clear(password string) error {
	if !b.secrets.CheckPassword(password) {
		return ErrWrongPassword
	}
	return b.actions.Clear()
}

// Notice returns the sync advisory, if any.
func (b *Board) Notice() string {
	return b.actions.Notice()
}

// Entries renders the current list, obscuring unrevealed text.
func (b *Board) Entries() []Entry {
	set := b.actions.Snapshot().Normalize()
	unlocked := b.Unlocked()

	entries := make([]Entry, len(set.Questions))
	for i, q := range set.Questions {
		revealed := set.Revealed[i]
		text := q
		if !revealed {
			text = Obscure(q)
		}
		entries[i] = Entry{
			Index:      i,
			Text:       text,
			Revealed:   revealed,
			Revealable: unlocked && !revealed,
		}
	}
	return entries
}

// Obscure replaces each non-space rune with CloudGlyph. Spaces stay so
// the shape of the question is still visible.
func Obscure(text string) string {
	var sb strings.Builder
	for _, r := range text {
		if unicode.IsSpace(r) {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteString(CloudGlyph)
	}
	return sb.String()
}
