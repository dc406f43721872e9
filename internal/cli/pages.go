package cli

import (
	"github.com/spf13/cobra"

	"nota-cli/internal/api"
	"nota-cli/internal/blockseq"
)

func newPagesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Page commands",
	}
	cmd.AddCommand(newPagesListCmd(app))
	cmd.AddCommand(newPagesShowCmd(app))
	cmd.AddCommand(newPagesCreateCmd(app))
	cmd.AddCommand(newPagesUpdateCmd(app))
	cmd.AddCommand(newPagesDeleteCmd(app))
	cmd.AddCommand(newPagesDuplicateCmd(app))
	cmd.AddCommand(newPagesShareCmd(app))
	cmd.AddCommand(newPagesUnshareCmd(app))
	cmd.AddCommand(newPagesLinkCmd(app))
	return cmd
}

func newPagesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			pages, err := c.ListPages(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": pages})
		},
	}
}

func newPagesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <page-id>",
		Short: "Show a page with its blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("page", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			page, err := c.GetPage(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			blocks, err := c.ListBlocks(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			blockseq.SortByOrder(blocks)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"page":   page,
				"blocks": blocks,
			}})
		},
	}
}

func newPagesCreateCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a page",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			page, err := c.CreatePage(cmd.Context(), title)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": page})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Page title")
	return cmd
}

func newPagesUpdateCmd(app *App) *cobra.Command {
	var title string
	var icon string
	var background string

	cmd := &cobra.Command{
		Use:   "update <page-id>",
		Short: "Update page title, icon or background",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("page", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var patch api.PagePatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("icon") {
				patch.Icon = &icon
			}
			if cmd.Flags().Changed("background") {
				patch.BackgroundColor = &background
			}
			page, err := c.UpdatePage(cmd.Context(), id, patch)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": page})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon token")
	cmd.Flags().StringVar(&background, "background", "", "Background color token")
	return cmd
}

func newPagesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <page-id>",
		Short: "Delete a page and its blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("page", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.DeletePage(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "status": "deleted"}})
		},
	}
}

func newPagesDuplicateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <page-id>",
		Short: "Duplicate a page with its blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("page", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			page, err := c.DuplicatePage(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": page})
		},
	}
}

func newPagesShareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "share <page-id>",
		Short: "Enable public sharing and print the link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("page", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			page, err := c.GetPage(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !page.IsPublic {
				page, err = c.ToggleShare(cmd.Context(), id)
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			if page.IsPublic && page.ShareToken == "" {
				page, err = c.GenerateShareLink(cmd.Context(), id)
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": page})
		},
	}
}

func newPagesUnshareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unshare <page-id>",
		Short: "Disable public sharing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("page", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			page, err := c.GetPage(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if page.IsPublic {
				page, err = c.ToggleShare(cmd.Context(), id)
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": page})
		},
	}
}

func newPagesLinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "link <page-id>",
		Short: "Generate (or rotate) the share link for a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("page", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			page, err := c.GenerateShareLink(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": page})
		},
	}
}
