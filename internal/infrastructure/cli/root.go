package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/textpolish/internal/app"
	"github.com/doeshing/textpolish/internal/infrastructure/cli/commands"
	"github.com/doeshing/textpolish/internal/infrastructure/cli/helpers"
)

// EnvDebug enables verbose logging when set to 1 or true.
const EnvDebug = "TEXTPOLISH_DEBUG"

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The returned env must be closed after execution.
func NewRootCmd(opts Options) (*cobra.Command, *commands.Env) {
	env := &commands.Env{
		Options:   app.Options{Verbose: opts.Verbose || IsDebugEnv()},
		Clipboard: NewClipboard(),
	}

	root := &cobra.Command{
		Use:   "polish [command]",
		Short: "polish - AI text improvement",
		Long: "polish fixes grammar, summarizes, expands and changes the tone of text.\n" +
			"Run without arguments on a terminal to start the interactive interface.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !helpers.IsTerminal(cmd.InOrStdin()) || !helpers.IsTerminal(cmd.OutOrStdout()) {
				return cmd.Help()
			}
			return commands.RunTUI(cmd, env)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&env.Options.ConfigPath, "config", "", "Config file (default ~/.textpolish/config.yaml, or $TEXTPOLISH_CONFIG)")
	root.PersistentFlags().BoolVarP(&env.Options.Verbose, "verbose", "v", env.Options.Verbose, "Enable debug logging")

	root.AddCommand(
		commands.NewImproveCommand(env),
		commands.NewActionsCommand(env),
		commands.NewHistoryCommand(env),
		commands.NewModelsCommand(env),
		commands.NewConfigCommand(env),
		commands.NewDoctorCommand(env),
		commands.NewTUICommand(env),
		commands.NewVersionCommand(),
	)
	return root, env
}

// IsDebugEnv reports whether TEXTPOLISH_DEBUG asks for verbose output.
func IsDebugEnv() bool {
	value := os.Getenv(EnvDebug)
	return value == "1" || strings.EqualFold(value, "true")
}
