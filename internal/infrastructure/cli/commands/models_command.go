package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/infrastructure/ai"
	"github.com/doeshing/textpolish/internal/ports"
)

const modelProbePrompt = "Reply with the single word: ok"

// NewModelsCommand creates the models command with all subcommands
func NewModelsCommand(env *Env) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Inspect configured AI models",
	}

	modelsCmd.AddCommand(
		newModelsListCommand(env),
		newModelsTestCommand(env),
	)

	return modelsCmd
}

// newModelsListCommand creates the 'models list' subcommand
func newModelsListCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured models with their tier and credential status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := env.Container(cmd.Context())
			if err != nil {
				return err
			}
			listModels(cmd.OutOrStdout(), container.Config)
			return nil
		},
	}
}

// newModelsTestCommand creates the 'models test' subcommand
func newModelsTestCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "test <name>",
		Short: "Send a short probe request to a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := env.Container(cmd.Context())
			if err != nil {
				return err
			}
			return testModel(cmd.Context(), cmd.OutOrStdout(), container.Config, args[0])
		},
	}
}

// listModels lists all configured models
func listModels(out io.Writer, cfg domain.Config) {
	fmt.Fprintf(out, "NAME\tPROVIDER\tMODEL ID\tTIERS\tCREDENTIAL\n")

	for _, model := range cfg.Models {
		var tiers []string
		for _, tier := range []domain.ModelTier{domain.TierLight, domain.TierHeavy} {
			if cfg.TierModelName(tier) == model.Name {
				tiers = append(tiers, string(tier))
			}
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n",
			model.Name,
			model.GetProvider(),
			model.ModelID,
			valueOrDash(strings.Join(tiers, ",")),
			credentialStatus(model))
	}
}

// testModel sends one probe request through the provider adapter
func testModel(ctx context.Context, out io.Writer, cfg domain.Config, modelName string) error {
	model, exists := cfg.FindModelByName(modelName)
	if !exists {
		return fmt.Errorf("model %s not found", modelName)
	}

	provider, err := ai.NewFactory().ForModel(model)
	if err != nil {
		return fmt.Errorf("failed to create provider for model %s: %w", modelName, err)
	}

	testCtx, cancel := context.WithTimeout(ctx, cfg.GetTimeout())
	defer cancel()

	resp, err := provider.Generate(testCtx, ports.ProviderRequest{
		Prompt: modelProbePrompt,
		Model:  model,
	})
	if err != nil {
		return fmt.Errorf("model %s test failed: %w", modelName, err)
	}

	fmt.Fprintf(out, "Model %s responded successfully: %s\n", modelName, strings.TrimSpace(resp.Text))
	return nil
}

func credentialStatus(model domain.ModelDefinition) string {
	if !model.NeedsCredential() {
		return "not needed"
	}
	if _, source := ai.ResolveCredential(model); source != "" {
		return "set via " + source
	}
	return "missing " + valueOrDash(model.AuthEnvVar)
}

func valueOrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
