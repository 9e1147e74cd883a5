package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/memoflow/internal/app"
	"github.com/abhisek/memoflow/internal/insight"
	"github.com/abhisek/memoflow/internal/llm"
	"github.com/abhisek/memoflow/internal/session"
	"github.com/abhisek/memoflow/internal/spacedrep"
	"github.com/abhisek/memoflow/internal/store"
	"github.com/abhisek/memoflow/internal/vocab"
)

var learnCmd = &cobra.Command{
	Use:       "learn <course>",
	Short:     "Review due and new words as flashcards",
	Args:      cobra.ExactArgs(1),
	ValidArgs: courseIDs(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd, args[0], session.ModeLearn)
	},
}

var quizCmd = &cobra.Command{
	Use:       "quiz <course>",
	Short:     "Review due and new words as a multiple-choice quiz",
	Args:      cobra.ExactArgs(1),
	ValidArgs: courseIDs(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd, args[0], session.ModeQuiz)
	},
}

func courseIDs() []string {
	ids := make([]string, len(vocab.Courses))
	for i, c := range vocab.Courses {
		ids[i] = string(c.ID)
	}
	return ids
}

func newRunner(st *store.Store) (*session.Runner, error) {
	sched, err := spacedrep.NewScheduler(spacedrep.DefaultLadder, time.Now)
	if err != nil {
		return nil, err
	}
	planner, err := session.NewPlanner(vocab.NewCatalog(st.WordRepo()), sched, appConfig.Session.Cap)
	if err != nil {
		return nil, err
	}
	return session.NewRunner(st.ProgressRepo(), st.EventRepo(), planner, sched, logger), nil
}

// newInsightService builds the insight service. Without a configured
// provider the service still answers from the cache and with a notice.
func newInsightService(ctx context.Context, st *store.Store) *insight.Service {
	provider, err := llm.NewProvider(ctx, appConfig.LLM, st.EventRepo())
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			logger.Warn("AI provider unavailable", "provider", appConfig.LLM.Provider, "error", err)
		}
		provider = nil
	}
	return insight.NewService(provider, st.InsightRepo(), insight.DefaultConfig(), logger)
}

func runPractice(cmd *cobra.Command, courseArg string, mode session.Mode) error {
	ctx := cmd.Context()
	courseID, err := vocab.ParseCourse(courseArg)
	if err != nil {
		return err
	}
	course, err := vocab.GetCourse(courseID)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	runner, err := newRunner(st)
	if err != nil {
		return err
	}
	active, err := runner.Start(ctx, courseID, mode)
	if err != nil {
		return fmt.Errorf("plan session: %w", err)
	}

	opts := app.Options{
		Title:  course.Title,
		Active: active,
		Finish: func(ctx context.Context, outcomes []spacedrep.Outcome) *session.Result {
			return runner.Finish(ctx, active, outcomes)
		},
		Distractors: appConfig.Session.Distractors,
	}
	if mode == session.ModeLearn {
		opts.Explainer = newInsightService(ctx, st)
	}

	res, err := app.Run(ctx, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case res == nil:
		if !active.Plan.Empty() {
			fmt.Fprintln(out, "Session left without saving.")
		}
	case res.Summary.Served == 0:
		fmt.Fprintln(out, "Nothing answered, nothing saved.")
	case !res.Saved():
		return fmt.Errorf("save progress: %w", res.SaveErr)
	default:
		fmt.Fprintf(out, "Saved %d review(s): %d correct, %d wrong (%d%%).\n",
			res.Summary.Served, res.Summary.Correct, res.Summary.Wrong(), res.Summary.Percent())
	}
	return nil
}
