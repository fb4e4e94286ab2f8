package cli

import (
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/radieske/sports-picks-cms/internal/picks-api/repo"
	"github.com/radieske/sports-picks-cms/internal/seed"
	"github.com/radieske/sports-picks-cms/internal/shared/db"
)

func (a *app) seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo content (or a YAML file) into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := loadSeed(file)
			if err != nil {
				return err
			}
			pg, err := db.ConnectPostgres(a.cfg.PostgresDSN)
			if err != nil {
				return err
			}
			defer pg.Close()

			counts, err := seed.Apply(cmd.Context(), repo.NewPostgres(pg), data, time.Now())
			a.printCounts(counts)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file (default: built-in demo data)")
	return cmd
}

func loadSeed(file string) (seed.File, error) {
	if file == "" {
		return seed.Demo()
	}
	fh, err := os.Open(file)
	if err != nil {
		return seed.File{}, err
	}
	defer fh.Close()
	return seed.Parse(fh)
}

func (a *app) printCounts(counts seed.Counts) {
	names := make([]string, 0, len(counts))
	for k := range counts {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, n := range names {
		a.printf(green, "✓ %-12s", n)
		a.println(counts[n])
	}
}
