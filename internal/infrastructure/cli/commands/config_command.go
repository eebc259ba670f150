package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	configapp "github.com/doeshing/textpolish/internal/application/config"
	configinfra "github.com/doeshing/textpolish/internal/infrastructure/config"
)

const (
	envKeyEditor                = "EDITOR"
	defaultEditor               = "vi"
	msgNoDifferencesFromDefault = "No differences from default configuration."
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(env *Env) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect polish configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), env)
		},
	}

	configCmd.AddCommand(
		newConfigPathCommand(env),
		newConfigShowCommand(env),
		newConfigValidateCommand(env),
		newConfigDiffCommand(env),
		newConfigEditCommand(env),
	)

	return configCmd
}

// newConfigPathCommand creates the 'config path' subcommand
func newConfigPathCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), loaderFor(env).Path())
			return nil
		},
	}
}

// newConfigShowCommand creates the 'config show' subcommand
func newConfigShowCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show full configuration with defaults applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.Context(), cmd.OutOrStdout(), env)
		},
	}
}

// newConfigValidateCommand creates the 'config validate' subcommand
func newConfigValidateCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := loaderFor(env)
			cfg, err := loader.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			if err := configapp.Validate(cfg); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", MsgConfigurationValid, loader.Path())
			return nil
		},
	}
}

// newConfigDiffCommand creates the 'config diff' subcommand
func newConfigDiffCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show diff versus default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigurationDiff(cmd.Context(), cmd.OutOrStdout(), env)
		},
	}
}

// newConfigEditCommand creates the 'config edit' subcommand
func newConfigEditCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigurationInEditor(cmd.Context(), env)
		},
	}
}

// showConfiguration displays the full configuration in YAML format.
// It reads the file directly so an invalid configuration can still be inspected.
func showConfiguration(ctx context.Context, out io.Writer, env *Env) error {
	cfg, err := loaderFor(env).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	fmt.Fprint(out, string(data))
	return nil
}

// showConfigurationDiff shows the difference between current and default configuration
func showConfigurationDiff(ctx context.Context, out io.Writer, env *Env) error {
	currentConfig, err := loaderFor(env).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load current configuration: %w", err)
	}

	diff := cmp.Diff(configinfra.Default(), currentConfig)
	if diff == "" {
		fmt.Fprintln(out, msgNoDifferencesFromDefault)
		return nil
	}

	fmt.Fprintln(out, diff)
	return nil
}

// editConfigurationInEditor opens the configuration file in the user's editor
func editConfigurationInEditor(ctx context.Context, env *Env) error {
	loader := loaderFor(env)
	// Load once so a missing file is created before the editor opens it.
	if _, err := loader.Load(ctx); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	editorCommand := getEditorCommand()
	cmd := exec.CommandContext(ctx, editorCommand, loader.Path())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editorCommand, err)
	}

	return nil
}

// loaderFor returns a loader for the configured path without building the container
func loaderFor(env *Env) *configinfra.FileLoader {
	return configinfra.NewFileLoader(env.Options.ConfigPath)
}

// getEditorCommand retrieves the editor command from environment or returns default
func getEditorCommand() string {
	if editor := os.Getenv(envKeyEditor); editor != "" {
		return editor
	}
	return defaultEditor
}
