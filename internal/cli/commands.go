package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the questions, obscured until revealed",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			printEntries(app.Out, s.board)
			printNotice(app.Err, s.board.Notice())
			return nil
		},
	}
}

func newAddCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <question...>",
		Short: "Add a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.board.Add(strings.Join(args, " ")); err != nil {
				return friendly(err)
			}
			s.flush(cmd.Context())

			fmt.Fprintf(app.Out, "Added question %d.\n", s.client.Snapshot().Len())
			printNotice(app.Err, s.board.Notice())
			return nil
		},
	}
}

func newRevealCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <n>",
		Short: "Reveal a question face to face (asks for the PIN)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			s, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			pin, err := app.ReadSecret("Enter PIN: ")
			if err != nil {
				return err
			}
			if err := s.board.Unlock(pin); err != nil {
				return friendly(err)
			}
			if err := s.board.Reveal(index); err != nil {
				return friendly(err)
			}
			s.flush(cmd.Context())

			printEntries(app.Out, s.board)
			printNotice(app.Err, s.board.Notice())
			return nil
		},
	}
}

func newDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <n>",
		Aliases: []string{"rm"},
		Short:   "Delete a question (asks for the password)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			s, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			password, err := app.ReadSecret("Enter password to delete this question: ")
			if err != nil {
				return err
			}
			if err := s.board.Delete(index, password); err != nil {
				return friendly(err)
			}
			s.flush(cmd.Context())

			fmt.Fprintf(app.Out, "Deleted question %d.\n", index+1)
			printNotice(app.Err, s.board.Notice())
			return nil
		},
	}
}

func newClearCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all questions (asks for the password)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			password, err := app.ReadSecret("Enter password to clear ALL questions: ")
			if err != nil {
				return err
			}
			if err := s.board.Clear(password); err != nil {
				return friendly(err)
			}
			s.flush(cmd.Context())

			fmt.Fprintln(app.Out, "Cleared all questions.")
			printNotice(app.Err, s.board.Notice())
			return nil
		},
	}
}
