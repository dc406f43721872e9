package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"nota-cli/internal/api"
	"nota-cli/internal/blockseq"
	"nota-cli/internal/model"
)

func newBlocksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Block commands",
	}
	cmd.AddCommand(newBlocksListCmd(app))
	cmd.AddCommand(newBlocksCreateCmd(app))
	cmd.AddCommand(newBlocksUpdateCmd(app))
	cmd.AddCommand(newBlocksCheckCmd(app, true))
	cmd.AddCommand(newBlocksCheckCmd(app, false))
	cmd.AddCommand(newBlocksDeleteCmd(app))
	cmd.AddCommand(newBlocksMoveCmd(app))
	cmd.AddCommand(newBlocksUploadCmd(app))
	return cmd
}

func newBlocksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <page-id>",
		Short: "List a page's blocks in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageID, err := parseID("page", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			blocks, err := c.ListBlocks(cmd.Context(), pageID)
			if err != nil {
				return writeErr(cmd, err)
			}
			blockseq.SortByOrder(blocks)
			return writeOut(cmd, app, map[string]any{"data": blocks})
		},
	}
}

func newBlocksCreateCmd(app *App) *cobra.Command {
	var blockType string
	var content string

	cmd := &cobra.Command{
		Use:   "create <page-id>",
		Short: "Append a block to a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageID, err := parseID("page", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			bt := model.BlockType(blockType)
			if !bt.Known() {
				return writeErr(cmd, fmt.Errorf("unknown block type: %s", blockType))
			}
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			// New blocks go at the end: order = current block count.
			existing, err := c.ListBlocks(cmd.Context(), pageID)
			if err != nil {
				return writeErr(cmd, err)
			}
			block, err := c.CreateBlock(cmd.Context(), pageID, bt, blockseq.AppendOrder(existing))
			if err != nil {
				return writeErr(cmd, err)
			}
			if content != "" {
				block, err = c.UpdateBlock(cmd.Context(), block.ID, api.BlockPatch{Content: &content})
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": block})
		},
	}

	cmd.Flags().StringVar(&blockType, "type", "text", "Block type (text|heading1|heading2|heading3|image|video|audio|file|quote|list|checkbox|divider)")
	cmd.Flags().StringVar(&content, "content", "", "Initial content")
	return cmd
}

func newBlocksUpdateCmd(app *App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "update <block-id>",
		Short: "Replace a block's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("block", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			block, err := c.UpdateBlock(cmd.Context(), id, api.BlockPatch{Content: &content})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": block})
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "New content")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newBlocksCheckCmd(app *App, checked bool) *cobra.Command {
	use, short := "check <block-id>", "Mark a checkbox block as done"
	if !checked {
		use, short = "uncheck <block-id>", "Mark a checkbox block as not done"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("block", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			v := checked
			block, err := c.UpdateBlock(cmd.Context(), id, api.BlockPatch{Checked: &v})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": block})
		},
	}
}

func newBlocksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <block-id>",
		Short: "Delete a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("block", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.DeleteBlock(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "status": "deleted"}})
		},
	}
}

func newBlocksMoveCmd(app *App) *cobra.Command {
	var to int

	cmd := &cobra.Command{
		Use:   "move <page-id> <block-id>",
		Short: "Move a block to a new position on its page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageID, err := parseID("page", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			blockID, err := parseID("block", args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			blocks, err := c.ListBlocks(cmd.Context(), pageID)
			if err != nil {
				return writeErr(cmd, err)
			}
			blockseq.SortByOrder(blocks)
			from := blockseq.IndexOf(blocks, blockID)
			if from < 0 {
				return writeErr(cmd, fmt.Errorf("block %d is not on page %d", blockID, pageID))
			}
			moved := blockseq.Move(blocks, from, to)
			if err := c.ReorderBlocks(cmd.Context(), blockseq.OrderPayload(moved)); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": moved})
		},
	}

	cmd.Flags().IntVar(&to, "to", 0, "Target position (0-based)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newBlocksUploadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <block-id> <file>",
		Short: "Attach a file to a media block",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("block", args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := os.Open(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			defer f.Close()
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			last := -1
			block, err := c.UploadFile(cmd.Context(), id, filepath.Base(args[1]), f, func(pct float64) {
				// Coarse progress on stderr so stdout stays machine-readable.
				step := int(pct) / 10 * 10
				if step > last {
					last = step
					fmt.Fprintf(cmd.ErrOrStderr(), "upload %d%%\n", step)
				}
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": block})
		},
	}
}
