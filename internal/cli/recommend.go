package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/kittclouds/moodreel/internal/emotion"
	"github.com/kittclouds/moodreel/internal/logging"
	"github.com/kittclouds/moodreel/internal/store"
	"github.com/kittclouds/moodreel/pkg/recommend"
)

type outputFlags struct {
	top  int
	json bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.top, "top", "n", 0, "number of movies (default recommend.default_top_n)")
	cmd.Flags().BoolVar(&o.json, "json", false, "print JSON")
}

func newRecommendCmd(a *app) *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "recommend <emotion>",
		Short: "Recommend movies for an emotion label",
		Long: `Recommend movies for one of: happy, sad, angry, surprise, fear, neutral.

Unknown labels fall back to the neutral genres.

Example:
  moodreel recommend fear
  moodreel recommend happy --top 10 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.recommend(cmd.OutOrStdout(), emotion.Normalize(args[0]), "cli", out)
		},
	}
	out.register(cmd)
	return cmd
}

func newMoodCmd(a *app) *cobra.Command {
	var (
		out      outputFlags
		polarity float64
	)
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Recommend movies from a text sentiment polarity",
		Long: `Bucket a sentiment polarity in [-1, 1] into happy (> 0.1), sad (< -0.1)
or neutral and recommend movies for it.

Example:
  moodreel mood --polarity 0.35`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if polarity < -1 || polarity > 1 {
				return fmt.Errorf("polarity %v outside [-1, 1]", polarity)
			}
			return a.recommend(cmd.OutOrStdout(), emotion.FromPolarity(polarity), "text", out)
		},
	}
	cmd.Flags().Float64VarP(&polarity, "polarity", "p", 0, "sentiment polarity in [-1, 1]")
	_ = cmd.MarkFlagRequired("polarity")
	out.register(cmd)
	return cmd
}

func (a *app) recommend(w io.Writer, label, source string, out outputFlags) error {
	_, idx, err := a.buildIndex()
	if err != nil {
		return err
	}

	top := out.top
	if top <= 0 {
		top = a.cfg.Recommend.DefaultTopN
	}
	if top > a.cfg.Recommend.MaxTopN {
		top = a.cfg.Recommend.MaxTopN
	}

	res := idx.Recommend(label, top)
	if res.Tier != recommend.TierPrimary && !res.Empty() {
		logging.Debug().Str("emotion", res.Emotion).Stringer("tier", res.Tier).Msg("genre fallback used")
	}

	if !res.Empty() {
		a.recordHistory(res, source)
	}

	if out.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(w, res)
	return nil
}

func (a *app) recordHistory(res recommend.Result, source string) {
	h, err := a.openHistory()
	if err != nil {
		logging.Warn().Err(err).Msg("history unavailable")
		return
	}
	defer h.Close()

	refs := make([]store.MovieRef, len(res.Items))
	for i, it := range res.Items {
		refs[i] = store.MovieRef{Index: it.Index, Title: it.Movie.Title, Score: it.Score}
	}
	entry := &store.HistoryEntry{Emotion: res.Emotion, Source: source, Tier: res.Tier.String(), Movies: refs}
	if err := h.AppendHistory(entry); err != nil {
		logging.Warn().Err(err).Msg("failed to record history")
	}
}

func printResult(w io.Writer, res recommend.Result) {
	fmt.Fprintf(w, "%s %s\n", emotion.Emoji(res.Emotion), res.Emotion)
	if res.Empty() {
		fmt.Fprintln(w, "No recommendations found.")
		return
	}
	if res.Tier != recommend.TierPrimary {
		fmt.Fprintf(w, "(no direct genre match, used %s fallback)\n", res.Tier)
	}
	for i, it := range res.Items {
		m := it.Movie
		fmt.Fprintf(w, "%2d. %s [%s] rating %s\n", i+1, m.Title, strings.Join(m.Genres, ", "), m.Rating)
		if m.TrailerURL != "" {
			fmt.Fprintf(w, "    %s\n", m.TrailerURL)
		}
	}
}
