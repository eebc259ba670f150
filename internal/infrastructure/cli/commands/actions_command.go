package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/infrastructure/cli/helpers"
)

// NewActionsCommand lists the action catalog.
func NewActionsCommand(env *Env) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "actions",
		Short: "List available improvement actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			language, selected := domain.DefaultLanguage, domain.ActionFixGrammar
			if container, err := env.Container(cmd.Context()); err == nil {
				language = container.Config.GetLanguage()
				selected = container.Config.GetDefaultAction()
			}
			if lang != "" {
				parsed, ok := domain.ParseLanguage(lang)
				if !ok {
					return fmt.Errorf("unsupported language %q (use de or en)", lang)
				}
				language = parsed
			}
			helpers.RenderCatalog(cmd.OutOrStdout(), language, selected)
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Label language (de|en), default from config")
	return cmd
}
