package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/qboard/internal/board"
	"github.com/stemsi/qboard/internal/config"
	"github.com/stemsi/qboard/internal/syncclient"
	"golang.org/x/term"
)

// flushTimeout bounds how long a command waits for its last push.
const flushTimeout = 30 * time.Second

// MirrorStore is a mirror that holds resources until closed.
type MirrorStore interface {
	syncclient.Mirror
	Close() error
}

// App carries the command tree's dependencies.
type App struct {
	Config *config.ClientConfig
	Out    io.Writer
	Err    io.Writer

	// ReadSecret prompts for a PIN or password without echo.
	ReadSecret func(prompt string) (string, error)
	// OpenMirror opens the local mirror in dir.
	OpenMirror func(dir string) (MirrorStore, error)

	in  *bufio.Reader
	log zerolog.Logger
}

// NewApp wires the App to the process terminal.
func NewApp(cfg *config.ClientConfig) *App {
	app := &App{
		Config:     cfg,
		Out:        os.Stdout,
		Err:        os.Stderr,
		OpenMirror: openBadgerMirror,
		in:         bufio.NewReader(os.Stdin),
		log:        zerolog.Nop(),
	}
	app.ReadSecret = app.readTerminalSecret
	return app
}

// setInput replaces the line source used by the shell and non-terminal
// secret prompts.
func (a *App) setInput(r io.Reader) {
	a.in = bufio.NewReader(r)
}

func openBadgerMirror(dir string) (MirrorStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create mirror dir: %w", err)
	}
	return syncclient.OpenBadgerMirror(dir)
}

// readTerminalSecret reads without echo on a terminal and falls back to a
// plain line otherwise.
func (a *App) readTerminalSecret(prompt string) (string, error) {
	fmt.Fprint(a.Err, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(a.Err)
		if err != nil {
			return "", fmt.Errorf("read secret: %w", err)
		}
		return string(b), nil
	}
	line, err := a.readLine()
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func (a *App) readLine() (string, error) {
	line, err := a.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

// session is one synced board for the life of a command.
type session struct {
	client *syncclient.Client
	board  *board.Board
	mirror MirrorStore
	log    zerolog.Logger
}

func (a *App) openSession(ctx context.Context) (*session, error) {
	cfg := a.Config
	mirror, err := a.OpenMirror(cfg.MirrorDir)
	if err != nil {
		return nil, err
	}

	endpoint := cfg.Endpoint()
	a.log.Debug().Str("endpoint", endpoint).Str("mirror", cfg.MirrorDir).Msg("opening session")

	client := syncclient.New(
		syncclient.NewHTTPRemote(endpoint, cfg.Timeout),
		mirror,
		syncclient.WithDebounce(cfg.Debounce),
		syncclient.WithRetries(cfg.Retries),
		syncclient.WithRetryUnit(cfg.RetryUnit),
		syncclient.WithLogger(a.log),
	)
	client.Start(ctx)

	return &session{
		client: client,
		board:  board.New(client, board.Secrets{PIN: cfg.PIN, Password: cfg.Password}),
		mirror: mirror,
		log:    a.log,
	}, nil
}

// close pushes outstanding edits and releases the mirror.
func (s *session) close() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := s.client.Flush(ctx); err != nil {
		s.log.Warn().Err(err).Msg("pending changes not pushed")
	}
	s.client.Close()
	if err := s.mirror.Close(); err != nil {
		s.log.Warn().Err(err).Msg("failed to close mirror")
	}
}

// flush waits for the push of the edits made so far.
func (s *session) flush(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()
	if err := s.client.Flush(ctx); err != nil {
		s.log.Warn().Err(err).Msg("pending changes not pushed")
	}
}

func printEntries(w io.Writer, b *board.Board) {
	entries := b.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No questions yet.")
		return
	}
	for _, e := range entries {
		marker := " "
		if e.Revealable {
			marker = "*"
		}
		fmt.Fprintf(w, "%s%3d. %s\n", marker, e.Index+1, e.Text)
	}
	if b.Unlocked() {
		fmt.Fprintln(w, "Tap a question to reveal it! (reveal <n>)")
	}
}

func printNotice(w io.Writer, notice string) {
	if notice != "" {
		fmt.Fprintf(w, "! %s\n", notice)
	}
}

// parseIndex converts a 1-based position as printed by list.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid question number %q", arg)
	}
	return n - 1, nil
}

// friendly turns sentinel errors into the short text shown to the user.
func friendly(err error) error {
	switch {
	case errors.Is(err, board.ErrWrongPIN):
		return errors.New("wrong PIN")
	case errors.Is(err, board.ErrWrongPassword):
		return errors.New("wrong password")
	case errors.Is(err, syncclient.ErrIndexOutOfRange):
		return errors.New("no such question")
	default:
		return err
	}
}
