package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/textpolish/internal/app"
	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/infrastructure/cli/helpers"
	"github.com/doeshing/textpolish/internal/infrastructure/export"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(env *Env) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage improvement history",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(env),
		newHistoryShowCommand(env),
		newHistorySearchCommand(env),
		newHistoryDeleteCommand(env),
		newHistoryClearCommand(env),
		newHistoryExportCommand(env),
		newHistoryStatsCommand(env),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(env *Env) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return errors.New(ErrInvalidLimit)
			}
			container, err := env.Container(cmd.Context())
			if err != nil {
				return err
			}
			return listHistoryEntries(cmd.OutOrStdout(), container, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	return cmd
}

// newHistoryShowCommand creates the 'history show' subcommand
func newHistoryShowCommand(env *Env) *cobra.Command {
	var copyOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one history entry in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			container, err := env.Container(cmd.Context())
			if err != nil {
				return err
			}
			record, err := container.HistoryStore.Find(id)
			if err != nil {
				return fmt.Errorf("record #%d: %w", id, err)
			}
			helpers.RenderHistoryRecord(cmd.OutOrStdout(), record, container.Config.GetLanguage())
			if copyOutput {
				return copyToClipboard(cmd.ErrOrStderr(), env, record.OutputText)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyOutput, "copy", "c", false, "Copy the entry's output to the clipboard")
	return cmd
}

// newHistorySearchCommand creates the 'history search' subcommand
func newHistorySearchCommand(env *Env) *cobra.Command {
	var searchLimit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search input and output text of history entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New(ErrQueryRequired)
			}
			container, err := env.Container(cmd.Context())
			if err != nil {
				return err
			}
			return searchHistoryEntries(cmd.OutOrStdout(), container, query, searchLimit)
		},
	}

	cmd.Flags().IntVar(&searchLimit, "limit", domain.DefaultHistorySearchLimit, "Limit search results")
	return cmd
}

// newHistoryDeleteCommand creates the 'history delete' subcommand
func newHistoryDeleteCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			container, err := env.Container(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := container.HistoryStore.Find(id); err != nil {
				return fmt.Errorf("record #%d: %w", id, err)
			}
			container.Controller.DeleteHistoryItem(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted record #%d.\n", id)
			return nil
		},
	}
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(env *Env) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := env.Container(cmd.Context())
			if err != nil {
				return err
			}
			return clearHistory(cmd, container, assumeYes)
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(env *Env) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <path|->",
		Short: "Export history as JSONL, Markdown or HTML",
		Long: "Export writes every history entry to path. The format follows the file extension\n" +
			"(.jsonl, .md, .html) unless --format is given. Use \"-\" to write to stdout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := env.Container(cmd.Context())
			if err != nil {
				return err
			}
			return exportHistory(cmd.OutOrStdout(), container, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Export format: jsonl, md or html")
	return cmd
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show usage per action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := env.Container(cmd.Context())
			if err != nil {
				return err
			}
			return showHistoryStats(cmd.OutOrStdout(), container)
		},
	}
}

// listHistoryEntries lists recent history entries
func listHistoryEntries(out io.Writer, container *app.Container, limit int) error {
	records := container.HistoryStore.All()
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}
	if len(records) > limit {
		records = records[:limit]
	}

	lang := container.Config.GetLanguage()
	now := time.Now()
	for _, rec := range records {
		helpers.RenderHistoryLine(out, rec, lang, now)
	}

	return nil
}

// searchHistoryEntries searches history for a keyword
func searchHistoryEntries(out io.Writer, container *app.Container, query string, limit int) error {
	records := container.HistoryStore.Search(query, limit)
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoMatches)
		return nil
	}

	lang := container.Config.GetLanguage()
	now := time.Now()
	for _, rec := range records {
		helpers.RenderHistoryLine(out, rec, lang, now)
	}

	return nil
}

// clearHistory removes all records after confirmation
func clearHistory(cmd *cobra.Command, container *app.Container, assumeYes bool) error {
	out := cmd.OutOrStdout()
	count := len(container.HistoryStore.All())
	if count == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	if !assumeYes {
		question := fmt.Sprintf("Delete all %d history entries?", count)
		if !helpers.PromptForConfirmation(out, cmd.InOrStdin(), question) {
			fmt.Fprintln(out, MsgClearCancelled)
			return nil
		}
	}

	container.Controller.ClearHistory()
	fmt.Fprintln(out, MsgHistoryCleared)
	return nil
}

// exportHistory writes history to a file or stdout
func exportHistory(out io.Writer, container *app.Container, path string, formatName string) error {
	format := export.FormatFromPath(path)
	if formatName != "" {
		parsed, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		format = parsed
	}

	records := container.HistoryStore.All()
	lang := container.Config.GetLanguage()

	if path == "-" {
		return export.Write(out, format, records, lang)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.SecureFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.Write(file, format, records, lang); err != nil {
		file.Close()
		return fmt.Errorf("failed to export history to %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to export history to %s: %w", path, err)
	}

	fmt.Fprintf(out, "Exported %d records to %s (%s).\n", len(records), path, format)
	return nil
}

// showHistoryStats displays usage per action
func showHistoryStats(out io.Writer, container *app.Container) error {
	records := container.HistoryStore.All()
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	stats := helpers.AnalyzeHistory(records)
	displayHistoryStatistics(out, stats, container.Config.GetLanguage())
	return nil
}

// displayHistoryStatistics displays formatted history statistics
func displayHistoryStatistics(out io.Writer, stats helpers.HistoryStatistics, lang domain.Language) {
	fmt.Fprintf(out, "Entries: %d\nCharacters in: %s\nCharacters out: %s\n",
		stats.Total,
		humanize.Comma(int64(stats.InputChars)),
		humanize.Comma(int64(stats.OutputChars)))

	if !stats.Oldest.IsZero() {
		fmt.Fprintf(out, "First entry: %s\nLatest entry: %s\n",
			humanize.Time(stats.Oldest),
			humanize.Time(stats.Newest))
	}

	fmt.Fprintln(out, "Actions:")
	for _, stat := range stats.Actions {
		fmt.Fprintf(out, "  %-22s %-4d %5.1f%%\n", domain.ActionLabel(lang, stat.Action), stat.Count, stat.Share)
	}
}

func parseRecordID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(value, "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q", value)
	}
	return id, nil
}

func copyToClipboard(out io.Writer, env *Env, text string) error {
	if env.Clipboard == nil || !env.Clipboard.Enabled() {
		return errors.New(ErrClipboardUnavailable)
	}
	if err := env.Clipboard.Copy(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	fmt.Fprintln(out, MsgCopied)
	return nil
}
