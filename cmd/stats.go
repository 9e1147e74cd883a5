package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/memoflow/internal/session"
	"github.com/abhisek/memoflow/internal/stats"
	"github.com/abhisek/memoflow/internal/store"
	"github.com/abhisek/memoflow/internal/ui/theme"
	"github.com/abhisek/memoflow/internal/vocab"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-course progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printDashboard(cmd)
	},
}

func printDashboard(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	runner, err := newRunner(st)
	if err != nil {
		return err
	}
	progress := runner.LoadProgress(ctx)

	words := st.WordRepo()
	dash, err := stats.Compute(ctx, vocab.NewCatalog(words), words, progress, time.Now())
	if err != nil {
		return err
	}
	renderDashboard(cmd.OutOrStdout(), dash)
	return nil
}

func renderDashboard(w io.Writer, dash *stats.Dashboard) {
	fmt.Fprintln(w, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("memoflow"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-22s  %6s  %6s  %5s  %5s  %8s  %8s\n",
		"Course", "Words", "Custom", "Due", "New", "Learning", "Mastered")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	row := func(c stats.CourseStats) {
		fmt.Fprintf(w, "%-22s  %6d  %6d  %5d  %5d  %8d  %8d\n",
			truncate(c.Course.Title, 22), c.Total, c.Custom, c.Due, c.New, c.Learning, c.Mastered)
	}
	for _, c := range dash.Courses {
		row(c)
	}
	fmt.Fprintln(w, strings.Repeat("─", 72))
	row(dash.Totals())

	fmt.Fprintln(w)
	if n := dash.DueTotal(); n > 0 {
		if len(dash.MostOverdue) > 0 {
			parts := make([]string, len(dash.MostOverdue))
			for i, o := range dash.MostOverdue {
				parts[i] = fmt.Sprintf("%s (%s)", o.Word.Text, waited(o.Overdue))
			}
			fmt.Fprintf(w, "Most overdue: %s\n", strings.Join(parts, ", "))
		}
		fmt.Fprintf(w, "%d word(s) due. Run `memoflow learn <course>` or `memoflow quiz <course>`.\n", n)
	} else {
		fmt.Fprintln(w, "All caught up. New words are waiting in every course.")
	}
}

// waited renders an overdue duration in its largest whole unit.
func waited(d time.Duration) string {
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd", int(d/(24*time.Hour)))
	case d >= time.Hour:
		return fmt.Sprintf("%dh", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dm", int(d/time.Minute))
	}
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent practice sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QuerySessionEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No sessions yet.")
			return nil
		}

		fmt.Fprintf(out, "%-19s  %-16s  %-5s  %6s  %7s  %8s  %s\n",
			"Time", "Course", "Mode", "Served", "Correct", "Accuracy", "Duration")
		fmt.Fprintln(out, strings.Repeat("─", 84))
		for _, e := range events {
			sum := session.Summary{Served: e.Served, Correct: e.Correct}
			dur := time.Duration(e.DurationSecs) * time.Second
			fmt.Fprintf(out, "%-19s  %-16s  %-5s  %6d  %7d  %7d%%  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.Course, 16),
				e.Mode,
				e.Served,
				e.Correct,
				sum.Percent(),
				dur,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
