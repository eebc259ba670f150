package commands

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/textpolish/internal/infrastructure/tui"
)

// NewTUICommand starts the interactive interface.
func NewTUICommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTUI(cmd, env)
		},
	}
}

// RunTUI builds the container with file logging and blocks until the user quits.
func RunTUI(cmd *cobra.Command, env *Env) error {
	env.Options.LogToFile = true
	container, err := env.CredentialedContainer(cmd.Context())
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), container.Controller, env.Clipboard, container.Logger)
}
