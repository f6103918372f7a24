package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kittclouds/moodreel/internal/emotion"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit int
		wipe  bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear past recommendations",
		Long: `Show the recorded emotion history, newest first.

History only survives between runs with history.driver set to sqlite.

Example:
  moodreel history --limit 10
  moodreel history --clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.openHistory()
			if err != nil {
				return err
			}
			defer h.Close()

			w := cmd.OutOrStdout()
			if wipe {
				if err := h.ClearHistory(); err != nil {
					return err
				}
				fmt.Fprintln(w, "History cleared.")
				return nil
			}

			if limit == 0 {
				limit = a.cfg.History.Limit
			}
			entries, err := h.ListHistory(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(w, "No history yet.")
				return nil
			}
			for _, e := range entries {
				titles := make([]string, len(e.Movies))
				for i, m := range e.Movies {
					titles[i] = m.Title
				}
				at := time.UnixMilli(e.CreatedAt).Format("2006-01-02 15:04")
				fmt.Fprintf(w, "%s %s %-8s (%s) %s\n", at, emotion.Emoji(e.Emotion), e.Emotion, e.Source, strings.Join(titles, ", "))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "max entries (default history.limit)")
	cmd.Flags().BoolVar(&wipe, "clear", false, "delete all history")
	return cmd
}
