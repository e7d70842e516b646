package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axellelanca/shortlinks/cmd"
)

var fullURLFlag string

// CreateCmd shortens one URL.
var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a short link for a URL",
	Long: `Shortens the given URL and prints its code. The URL must answer over
http or https; a URL without scheme is tried as http first.

Example:
  shortlinks create --url="go.dev/doc"`,
	RunE: func(c *cobra.Command, args []string) error {
		app, err := cmd.OpenApp()
		if err != nil {
			return err
		}
		defer app.Close()

		link, err := app.LinkService.Shorten(c.Context(), fullURLFlag)
		if err != nil {
			return cmd.UserError(err)
		}

		out := c.OutOrStdout()
		fmt.Fprintln(out, "Short link created:")
		fmt.Fprintf(out, "Code: %s\n", link.ShortURL)
		fmt.Fprintf(out, "URL: %s\n", shortLink(link.ShortURL))
		fmt.Fprintf(out, "Destination: %s\n", link.FullURL)
		return nil
	},
}

func shortLink(code string) string {
	return fmt.Sprintf("%s/l/%s/", cmd.Cfg.Server.BaseURL, code)
}

func init() {
	CreateCmd.Flags().StringVar(&fullURLFlag, "url", "", "the URL to shorten")
	_ = CreateCmd.MarkFlagRequired("url")

	cmd.RootCmd.AddCommand(CreateCmd)
}
