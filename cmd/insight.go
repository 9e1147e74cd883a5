package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/memoflow/internal/insight"
	"github.com/abhisek/memoflow/internal/vocab"
)

var insightCmd = &cobra.Command{
	Use:   "insight <course> <word-id>",
	Short: "Ask the AI helper for a mnemonic, examples and usage notes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		course, err := vocab.ParseCourse(args[0])
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		word, err := vocab.NewCatalog(st.WordRepo()).Lookup(ctx, course, args[1])
		if err != nil {
			return err
		}

		in := newInsightService(ctx, st).Explain(ctx, word)
		printInsight(cmd.OutOrStdout(), word, in)
		return nil
	},
}

func printInsight(w io.Writer, word vocab.Word, in *insight.Insight) {
	fmt.Fprintf(w, "%s  %s\n", word.Text, word.Phonetic)
	fmt.Fprintf(w, "%s %s\n\n", word.PartOfSpeech, word.Meaning)

	if !in.Available() {
		fmt.Fprintln(w, in.Notice)
		return
	}

	fmt.Fprintf(w, "Mnemonic:     %s\n", in.Mnemonic)
	for i, ex := range in.Examples {
		fmt.Fprintf(w, "Example %d:    %s\n              %s\n", i+1, ex.En, ex.Zh)
	}
	for _, c := range in.Collocations {
		fmt.Fprintf(w, "Collocation:  %s\n", c)
	}
	fmt.Fprintf(w, "Nuance:       %s\n", in.Nuance)

	source := in.Model
	if in.Cached {
		source += ", cached"
	}
	fmt.Fprintf(w, "\n(%s)\n", source)
}
