package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/axellelanca/shortlinks/cmd"
	"github.com/axellelanca/shortlinks/internal/models"
	"github.com/axellelanca/shortlinks/internal/services"
)

// ActivateCmd re-enables a deactivated link.
var ActivateCmd = &cobra.Command{
	Use:   "activate <short-code>",
	Short: "Re-enable a short link",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return setState(c, args[0], (*services.LinkService).Activate)
	},
}

// DeactivateCmd blocks redirects and re-shortening for a link.
var DeactivateCmd = &cobra.Command{
	Use:   "deactivate <short-code>",
	Short: "Disable a short link",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return setState(c, args[0], (*services.LinkService).Deactivate)
	},
}

type stateChange func(s *services.LinkService, ctx context.Context, code string) (*models.Link, error)

func setState(c *cobra.Command, code string, change stateChange) error {
	app, err := cmd.OpenApp()
	if err != nil {
		return err
	}
	defer app.Close()

	link, err := change(app.LinkService, c.Context(), code)
	if err != nil {
		return cmd.UserError(err)
	}
	printLink(c.OutOrStdout(), link)
	return nil
}

func init() {
	cmd.RootCmd.AddCommand(ActivateCmd, DeactivateCmd)
}
