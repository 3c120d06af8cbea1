package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xhanalabs/xl/internal/observability"
	"github.com/xhanalabs/xl/pkg/models"
)

var (
	historySince   string
	historyCommand string
	historyLimit   int
	historyOutput  string
	historyStats   bool
)

// now is swapped in tests.
var now = time.Now

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent xl invocations",
	Long: `Show the invocations recorded in .xl_history.jsonl, oldest first.

Filter with --since (a duration such as 24h), --command (for example
"random int") and --limit. Pass --stats for per-command counts instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if History == nil {
			return fmt.Errorf("history log not initialized")
		}

		filter := observability.HistoryFilter{
			Command: historyCommand,
			Limit:   historyLimit,
		}
		if historySince != "" {
			d, err := time.ParseDuration(historySince)
			if err != nil {
				return fmt.Errorf("parsing --since %q: %w", historySince, err)
			}
			since := now().Add(-d)
			filter.Since = &since
		}

		if historyStats {
			var since time.Time
			if filter.Since != nil {
				since = *filter.Since
			}
			usage, err := observability.NewUsageCalculator(History).Calculate(since)
			if err != nil {
				return fmt.Errorf("calculating usage: %w", err)
			}
			return render(cmd.OutOrStdout(), historyOutput, usageView(usage))
		}

		entries, err := History.Read(filter)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}
		return render(cmd.OutOrStdout(), historyOutput, historyView(entries))
	},
}

func historyView(entries []models.HistoryEntry) view {
	var b strings.Builder
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		when := humanize.RelTime(e.Time, now(), "ago", "from now")
		status := "ok"
		if e.Error != "" {
			status = "error: " + e.Error
		}
		line := strings.TrimSpace(e.Command + " " + strings.Join(e.Args, " "))
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-16s %s  [%s]", when, line, status)
		rows = append(rows, []string{when, e.Command, strings.Join(e.Args, " "), status})
	}
	if b.Len() == 0 {
		b.WriteString("No history recorded.")
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	return view{
		Text:    b.String(),
		Data:    entries,
		Headers: []string{"WHEN", "COMMAND", "ARGS", "STATUS"},
		Rows:    rows,
	}
}

func usageView(u *observability.Usage) view {
	commands := make([]string, 0, len(u.ByCommand))
	for name := range u.ByCommand {
		commands = append(commands, name)
	}
	sort.Strings(commands)

	var b strings.Builder
	fmt.Fprintf(&b, "%s invocations, %s failed", humanize.Comma(int64(u.Invocations)), humanize.Comma(int64(u.Failures)))
	if u.Oldest != nil && u.Newest != nil {
		fmt.Fprintf(&b, " (first %s, last %s)", humanize.RelTime(*u.Oldest, now(), "ago", "from now"), humanize.RelTime(*u.Newest, now(), "ago", "from now"))
	}
	rows := make([][]string, 0, len(commands))
	for _, name := range commands {
		fmt.Fprintf(&b, "\n  %-16s %d", name, u.ByCommand[name])
		rows = append(rows, []string{name, strconv.Itoa(u.ByCommand[name])})
	}
	return view{
		Text:    b.String(),
		Data:    u,
		Headers: []string{"COMMAND", "COUNT"},
		Rows:    rows,
	}
}

func init() {
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "show per-command usage counts")
	historyCmd.Flags().StringVar(&historySince, "since", "", "only show entries newer than this duration (e.g. 24h)")
	historyCmd.Flags().StringVar(&historyCommand, "command", "", "only show entries for this command")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "show at most this many entries (0 for all)")
	historyCmd.Flags().StringVarP(&historyOutput, "output", "o", formatText, "output format (text, json, yaml, table)")
	rootCmd.AddCommand(historyCmd)
}
