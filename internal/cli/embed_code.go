package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/radieske/sports-picks-cms/internal/picks-api/embedcode"
)

func (a *app) embedCodeCmd() *cobra.Command {
	var siteID, pickID, base string
	cmd := &cobra.Command{
		Use:   "embed-code",
		Short: "Print the snippet that embeds a site or pick widget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				code string
				err  error
			)
			switch {
			case siteID != "" && pickID != "":
				return errors.New("use either --site or --pick")
			case siteID != "":
				code, _, err = embedcode.Site(base, siteID)
			case pickID != "":
				code, _, err = embedcode.Pick(base, pickID)
			default:
				return errors.New("--site or --pick is required")
			}
			if err != nil {
				return err
			}
			a.println(code)
			return nil
		},
	}
	cmd.Flags().StringVar(&siteID, "site", "", "site id")
	cmd.Flags().StringVar(&pickID, "pick", "", "pick id")
	cmd.Flags().StringVar(&base, "base-url", a.cfg.PublicEmbedURL, "public embed base URL (PUBLIC_EMBED_URL)")
	return cmd
}
