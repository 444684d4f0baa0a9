package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/stemsi/qboard/internal/logger"
)

// NewRootCommand builds the qboard command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	var (
		apiURL    string
		mirrorDir string
		logLevel  string
	)

	root := &cobra.Command{
		Use:   "qboard",
		Short: "Question board in the terminal",
		Long: `qboard keeps a list of hidden questions in sync with the question board backend.

Questions stay obscured until revealed face to face with the PIN.
Deleting needs the password.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if cmd.Flags().Changed("api-url") {
				cfg.APIURL = strings.TrimSpace(apiURL)
			}
			if cmd.Flags().Changed("mirror-dir") {
				cfg.MirrorDir = mirrorDir
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			app.log = logger.SetupWriter(app.Err, cfg.LogLevel, "pretty")
			return nil
		},
	}
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL (overrides QBOARD_API_URL)")
	root.PersistentFlags().StringVar(&mirrorDir, "mirror-dir", "", "local mirror directory (overrides QBOARD_MIRROR_DIR)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newListCommand(app),
		newAddCommand(app),
		newRevealCommand(app),
		newDeleteCommand(app),
		newClearCommand(app),
		newShellCommand(app),
	)
	return root
}
