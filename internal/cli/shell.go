package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const shellHelp = `Commands:
  add <question>   add a question
  list             show the questions
  unlock           face to face: enter the PIN to reveal questions
  lock             leave face to face
  reveal <n>       reveal question n (unlocked only)
  delete <n>       delete question n (asks for the password)
  clear            delete all questions (asks for the password)
  help             show this help
  quit             push pending changes and exit`

func newShellCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session; rapid edits are pushed together",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			sh := &shell{app: app, s: s}
			return sh.run()
		},
	}
}

type shell struct {
	app        *App
	s          *session
	lastNotice string
}

func (sh *shell) run() error {
	out := sh.app.Out
	printEntries(out, sh.s.board)
	sh.reportNotice()

	for {
		fmt.Fprint(out, "> ")
		line, err := sh.app.readLine()
		if line = strings.TrimSpace(line); line != "" {
			if quit := sh.exec(line); quit {
				return nil
			}
			sh.reportNotice()
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// exec runs one shell line and reports whether the shell should exit.
func (sh *shell) exec(line string) bool {
	out := sh.app.Out
	b := sh.s.board
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	var err error
	switch strings.ToLower(name) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(out, shellHelp)
	case "list", "ls":
		printEntries(out, b)
	case "add":
		if err = b.Add(rest); err == nil {
			printEntries(out, b)
		}
	case "unlock":
		var pin string
		if pin, err = sh.app.ReadSecret("Enter PIN: "); err == nil {
			if err = b.Unlock(pin); err == nil {
				printEntries(out, b)
			}
		}
	case "lock":
		b.Lock()
		printEntries(out, b)
	case "reveal":
		var index int
		if index, err = parseIndex(rest); err == nil {
			if err = b.Reveal(index); err == nil {
				printEntries(out, b)
			}
		}
	case "delete", "rm":
		var index int
		if index, err = parseIndex(rest); err == nil {
			var password string
			if password, err = sh.app.ReadSecret("Enter password to delete this question: "); err == nil {
				if err = b.Delete(index, password); err == nil {
					printEntries(out, b)
				}
			}
		}
	case "clear":
		var password string
		if password, err = sh.app.ReadSecret("Enter password to clear ALL questions: "); err == nil {
			if err = b.Clear(password); err == nil {
				printEntries(out, b)
			}
		}
	default:
		err = fmt.Errorf("unknown command %q (try help)", name)
	}

	if err != nil {
		fmt.Fprintf(out, "error: %v\n", friendly(err))
	}
	return false
}

// reportNotice prints the advisory when it changes.
func (sh *shell) reportNotice() {
	notice := sh.s.board.Notice()
	if notice == sh.lastNotice {
		return
	}
	sh.lastNotice = notice
	printNotice(sh.app.Err, notice)
}
