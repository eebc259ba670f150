package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/infrastructure/cli/helpers"
)

// NewImproveCommand creates the one-shot improvement command.
func NewImproveCommand(env *Env) *cobra.Command {
	var (
		actionName string
		copyResult bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "improve [text|-]",
		Short: "Improve text from arguments or stdin",
		Long: "Improve sends the text to the model selected for the action and prints the result.\n" +
			"Without arguments, or with a single \"-\", the text is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := helpers.ReadInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return runImprove(cmd, env, improveOptions{
				text:       text,
				actionName: actionName,
				copyResult: copyResult,
				timeout:    timeout,
			})
		},
	}

	cmd.Flags().StringVarP(&actionName, "action", "a", "", "Action id or alias (grammar, summarize, expand, professional, casual)")
	cmd.Flags().BoolVarP(&copyResult, "copy", "c", false, "Copy the result to the clipboard")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Override the request timeout (e.g. 30s)")
	return cmd
}

type improveOptions struct {
	text       string
	actionName string
	copyResult bool
	timeout    time.Duration
}

func runImprove(cmd *cobra.Command, env *Env, opts improveOptions) error {
	ctx := cmd.Context()
	container, err := env.CredentialedContainer(ctx)
	if err != nil {
		return err
	}
	ctrl := container.Controller

	if opts.actionName != "" {
		action, err := domain.ParseAction(opts.actionName)
		if err != nil {
			return err
		}
		if err := ctrl.SelectAction(action); err != nil {
			return err
		}
	}
	ctrl.SetInput(opts.text)

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	var spinner *helpers.Spinner
	if helpers.IsTerminal(cmd.ErrOrStderr()) {
		spinner = helpers.NewSpinner(cmd.ErrOrStderr(), domain.ActionLabel(ctrl.Language(), ctrl.Snapshot().Action))
	}
	spinner.Start()
	view, err := ctrl.Submit(ctx)
	spinner.Stop()
	if err != nil {
		return err
	}

	if view.State == domain.StateFailed {
		return errors.New(view.Error)
	}

	fmt.Fprintln(cmd.OutOrStdout(), view.Output)

	if opts.copyResult {
		return copyToClipboard(cmd.ErrOrStderr(), env, view.Output)
	}
	return nil
}
