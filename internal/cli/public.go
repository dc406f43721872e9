package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"nota-cli/internal/blockseq"
	"nota-cli/internal/model"
)

func newPublicCmd(app *App) *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "public <share-token>",
		Short: "Read a shared page without logging in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := newClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			page, err := c.PublicPage(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			blocks, err := c.ResolvePublicBlocks(cmd.Context(), page)
			if err != nil {
				return writeErr(cmd, err)
			}
			blockseq.SortByOrder(blocks)

			if render {
				out, err := glamour.Render(blocksMarkdown(page, blocks), "auto")
				if err != nil {
					return writeErr(cmd, err)
				}
				cmd.Print(out)
				return nil
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"page":   page,
				"blocks": blocks,
			}})
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "Render the page as styled markdown instead of JSON")
	return cmd
}

// blocksMarkdown flattens a shared page into a single markdown document.
func blocksMarkdown(page model.Page, blocks []model.Block) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", page.DisplayTitle())
	for _, bl := range blocks {
		switch bl.Type {
		case model.BlockHeading1:
			fmt.Fprintf(&b, "# %s\n\n", bl.Content)
		case model.BlockHeading2:
			fmt.Fprintf(&b, "## %s\n\n", bl.Content)
		case model.BlockHeading3:
			fmt.Fprintf(&b, "### %s\n\n", bl.Content)
		case model.BlockQuote:
			fmt.Fprintf(&b, "> %s\n\n", bl.Content)
		case model.BlockList:
			fmt.Fprintf(&b, "- %s\n", bl.Content)
		case model.BlockCheckbox:
			mark := " "
			if bl.Checked {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s\n", mark, bl.Content)
		case model.BlockDivider:
			b.WriteString("---\n\n")
		case model.BlockImage, model.BlockVideo, model.BlockAudio, model.BlockFile:
			if bl.FileURL != "" {
				fmt.Fprintf(&b, "[%s](%s)\n\n", bl.Type, bl.FileURL)
			}
		default:
			// Unknown types render as blank slots rather than being dropped.
			if bl.Content != "" {
				fmt.Fprintf(&b, "%s\n\n", bl.Content)
			} else {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
