package cli

import (
	"fmt"
	"os"
	"strings"

	"nota-cli/internal/api"
	"nota-cli/internal/format"
	"nota-cli/internal/session"
	"nota-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type App struct {
	Server     string
	PrettyJSON bool
	Format     string

	// test seams; nil in production
	client  *api.Client
	session *session.Session
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "nota",
		Short:        "Nota notes CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  nota

  # Scriptable commands
  nota pages list

  # Jump straight into a page
  nota 42

  # Read someone's shared page without an account
  nota public a1b2c3d4
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Server, "server", envOr("NOTA_SERVER", api.DefaultBaseURL), "Base URL of the Nota API")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("NOTA_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newPagesCmd(app))
	cmd.AddCommand(newBlocksCmd(app))
	cmd.AddCommand(newCommentsCmd(app))
	cmd.AddCommand(newPublicCmd(app))

	return cmd
}

func runTUI(app *App) error {
	c, sess, err := newClient(app)
	if err != nil {
		return err
	}
	return tui.Run(c, sess)
}

// newClient wires the session file and logger into an API client. The logger
// goes to $NOTA_LOG when set and is silent otherwise, so it never corrupts
// the JSON output contract on stdout.
func newClient(app *App) (*api.Client, *session.Session, error) {
	if app.client != nil {
		return app.client, app.session, nil
	}
	sess, err := session.Load()
	if err != nil {
		return nil, nil, err
	}
	log := zap.NewNop()
	if path := os.Getenv("NOTA_LOG"); path != "" {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{path}
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		if l, err := cfg.Build(); err == nil {
			log = l
		}
	}
	c := api.New(app.Server, sess, log)
	app.client = c
	app.session = sess
	return c, sess, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
