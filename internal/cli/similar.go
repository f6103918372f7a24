package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSimilarCmd(a *app) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "similar <title>",
		Short: "List movies whose descriptions resemble a title",
		Long: `Look up a movie by title (case-insensitive) and list the catalog entries
with the closest TF-IDF description vectors.

Example:
  moodreel similar "The Grand Budapest Hotel" -k 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, idx, err := a.buildIndex()
			if err != nil {
				return err
			}

			c := idx.Corpus()
			i := c.FindTitle(args[0])
			if i < 0 {
				return fmt.Errorf("title %q not in catalog", args[0])
			}

			vs, err := a.similarIndex(idx)
			if err != nil {
				return err
			}
			if k <= 0 {
				k = a.cfg.Similar.Neighbours
			}
			ids, err := vs.Similar(uint32(i), idx.Matrix().Row(i), k)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			m := c.Movie(i)
			fmt.Fprintf(w, "Movies like %s:\n", m.Title)
			if len(ids) == 0 {
				fmt.Fprintln(w, "No similar movies found.")
				return nil
			}
			for n, id := range ids {
				other := c.Movie(int(id))
				fmt.Fprintf(w, "%2d. %s [%s]\n", n+1, other.Title, strings.Join(other.Genres, ", "))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "k", "k", 0, "number of neighbours (default similar.neighbours)")
	return cmd
}
