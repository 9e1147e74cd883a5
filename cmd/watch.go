package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/memoflow/internal/logging"
	"github.com/abhisek/memoflow/internal/reminder"
	"github.com/abhisek/memoflow/internal/vocab"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Log how many words are due, on a schedule, until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		interval := appConfig.Reminder.Interval
		if d, _ := cmd.Flags().GetDuration("interval"); d > 0 {
			interval = d
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		// Reports are the purpose of this command, so they are logged at
		// info regardless of the configured level.
		reportLogger, err := logging.New(os.Stderr, "info", appConfig.Log.Format)
		if err != nil {
			return err
		}

		w, err := reminder.New(st.ProgressRepo(), vocab.NewCatalog(st.WordRepo()),
			reminder.LogNotifier{Logger: reportLogger}, interval, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Checking due words every %s. Press Ctrl+C to stop.\n", interval)
		return w.Run(ctx)
	},
}

func init() {
	watchCmd.Flags().Duration("interval", 0, "Check interval (overrides MEMOFLOW_REMINDER_INTERVAL)")
}
