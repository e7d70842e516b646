package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/axellelanca/shortlinks/cmd"
	"github.com/axellelanca/shortlinks/internal/models"
)

// StatsCmd shows a link without counting a request.
var StatsCmd = &cobra.Command{
	Use:   "stats <short-code>",
	Short: "Show the request count and state of a short link",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		app, err := cmd.OpenApp()
		if err != nil {
			return err
		}
		defer app.Close()

		link, err := app.LinkService.GetLink(c.Context(), args[0])
		if err != nil {
			return cmd.UserError(err)
		}
		printLink(c.OutOrStdout(), link)
		return nil
	},
}

func printLink(out io.Writer, link *models.Link) {
	state := "active"
	if !link.IsActive {
		state = "inactive"
	}
	fmt.Fprintf(out, "Code: %s\n", link.ShortURL)
	fmt.Fprintf(out, "URL: %s\n", shortLink(link.ShortURL))
	fmt.Fprintf(out, "Destination: %s\n", link.FullURL)
	fmt.Fprintf(out, "Requests: %d\n", link.CountRequests)
	fmt.Fprintf(out, "State: %s\n", state)
	fmt.Fprintf(out, "Created: %s\n", link.CreatedAt.Format("2006-01-02 15:04:05"))
}

func init() {
	cmd.RootCmd.AddCommand(StatsCmd)
}
