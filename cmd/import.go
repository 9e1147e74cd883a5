package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/memoflow/internal/vocab"
)

var importCmd = &cobra.Command{
	Use:   "import <course> <file>",
	Short: "Add words from a .json, .csv or .xlsx file to a course",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		course, err := vocab.ParseCourse(args[0])
		if err != nil {
			return err
		}
		parsed, err := vocab.ParseFile(args[1])
		if err != nil {
			return fmt.Errorf("import %s: %w", args[1], err)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		added, err := st.WordRepo().AddCustomWords(cmd.Context(), course, parsed.Words)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %d new word(s) into %s (%d already present).\n",
			added, course, len(parsed.Words)-added)
		for _, reason := range parsed.Skipped {
			fmt.Fprintf(out, "  skipped: %s\n", reason)
		}
		return nil
	},
}

var clearCustomCmd = &cobra.Command{
	Use:   "clear-custom",
	Short: "Delete every imported word",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this deletes all imported words; re-run with --yes to confirm")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.WordRepo().ClearCustom(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d imported word(s).\n", n)
		return nil
	},
}

func init() {
	clearCustomCmd.Flags().Bool("yes", false, "Confirm deletion")
}
