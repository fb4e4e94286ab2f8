package cli

import (
	"github.com/spf13/cobra"

	"github.com/radieske/sports-picks-cms/internal/migrate"
)

func (a *app) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			conn, err := migrate.Connect(ctx, a.cfg.PostgresDSN)
			if err != nil {
				return err
			}
			defer conn.Close(ctx)

			all, err := migrate.Embedded()
			if err != nil {
				return err
			}
			applied, err := migrate.NewRunner(conn, all).Up(ctx)
			for _, name := range applied {
				a.printf(green, "✓ applied %s\n", name)
			}
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				a.printf(cyan, "schema is up to date\n")
			}
			return nil
		},
	}
	cmd.AddCommand(a.migrateStatusCmd())
	return cmd
}

func (a *app) migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			conn, err := migrate.Connect(ctx, a.cfg.PostgresDSN)
			if err != nil {
				return err
			}
			defer conn.Close(ctx)

			all, err := migrate.Embedded()
			if err != nil {
				return err
			}
			status, err := migrate.NewRunner(conn, all).Status(ctx)
			if err != nil {
				return err
			}
			a.printStatus(status)
			return nil
		},
	}
}

func (a *app) printStatus(status []migrate.StatusEntry) {
	for _, s := range status {
		switch {
		case s.Modified:
			a.printf(red, "! %s modified after being applied on %s\n", s.Name, s.AppliedAt.Format("2006-01-02 15:04"))
		case s.Applied:
			a.printf(green, "✓ %s", s.Name)
			a.println("  " + s.AppliedAt.Format("2006-01-02 15:04"))
		default:
			a.printf(yellow, "• %s pending\n", s.Name)
		}
	}
}
