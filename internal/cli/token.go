package cli

import (
	"github.com/spf13/cobra"

	"github.com/radieske/sports-picks-cms/internal/picks-api/auth"
	"github.com/radieske/sports-picks-cms/internal/shared/db"
)

func (a *app) tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
	}
	cmd.AddCommand(a.tokenCreateCmd())
	return cmd
}

func (a *app) tokenCreateCmd() *cobra.Command {
	var (
		userID string
		label  string
		roles  []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Mint a bearer token for a user and grant roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pg, err := db.ConnectPostgres(a.cfg.PostgresDSN)
			if err != nil {
				return err
			}
			defer pg.Close()

			token, err := auth.NewAuthenticator(auth.NewPostgres(pg)).Mint(cmd.Context(), userID, label, roles...)
			if err != nil {
				return err
			}
			a.printf(green, "✓ token created for %s %v\n", userID, roles)
			a.printf(yellow, "store it now, it cannot be shown again:\n")
			a.println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (uuid)")
	cmd.Flags().StringVar(&label, "label", "picksctl", "token label")
	cmd.Flags().StringSliceVar(&roles, "role", nil, "role to grant: admin, analyst or user (repeatable)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
