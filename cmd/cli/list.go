package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/axellelanca/shortlinks/cmd"
)

var activeFlag string

// ListCmd prints links, optionally filtered on their state.
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List short links",
	Example: `  shortlinks list
  shortlinks list --active=false`,
	RunE: func(c *cobra.Command, args []string) error {
		var filter *bool
		if c.Flags().Changed("active") {
			v, err := strconv.ParseBool(activeFlag)
			if err != nil {
				return fmt.Errorf("invalid --active value %q", activeFlag)
			}
			filter = &v
		}

		app, err := cmd.OpenApp()
		if err != nil {
			return err
		}
		defer app.Close()

		links, err := app.LinkService.ListLinks(c.Context(), filter)
		if err != nil {
			return cmd.UserError(err)
		}

		w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tACTIVE\tREQUESTS\tDESTINATION")
		for _, l := range links {
			fmt.Fprintf(w, "%s\t%t\t%d\t%s\n", l.ShortURL, l.IsActive, l.CountRequests, l.FullURL)
		}
		return w.Flush()
	},
}

func init() {
	ListCmd.Flags().StringVar(&activeFlag, "active", "", "only show links whose state matches (true or false)")
	cmd.RootCmd.AddCommand(ListCmd)
}
