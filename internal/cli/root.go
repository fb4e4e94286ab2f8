// Package cli implementa o picksctl, a ferramenta de operação do CMS.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/radieske/sports-picks-cms/internal/shared/config"
)

var (
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

type app struct {
	cfg config.Config
	out io.Writer
}

// NewRootCmd monta a árvore de comandos; cfg vem de config.Load e pode ser sobrescrito por flags
func NewRootCmd(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg}
	root := &cobra.Command{
		Use:   "picksctl",
		Short: "Operator CLI for the sports picks CMS",
		Long: `picksctl administers the picks CMS database and content.

Examples:

  picksctl migrate
  picksctl seed
  picksctl token create --user <uuid> --role admin
  picksctl embed-code --site <uuid>
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.out = cmd.OutOrStdout()
		},
	}
	root.PersistentFlags().StringVar(&a.cfg.PostgresDSN, "dsn", cfg.PostgresDSN, "Postgres connection string (POSTGRES_DSN)")

	root.AddCommand(
		a.migrateCmd(),
		a.seedCmd(),
		a.cleanupCmd(),
		a.staleEventsCmd(),
		a.tokenCmd(),
		a.embedCodeCmd(),
	)
	return root
}

// Execute roda o picksctl e encerra com status 1 em caso de erro
func Execute(ctx context.Context) {
	if err := NewRootCmd(config.Load()).ExecuteContext(ctx); err != nil {
		red.Fprintln(os.Stderr, "✗", err)
		os.Exit(1)
	}
}

func (a *app) printf(c *color.Color, format string, args ...any) {
	c.Fprintf(a.out, format, args...)
}

func (a *app) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
