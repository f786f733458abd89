package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/ports"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <url>",
		Short: "Generate an affiliate link and add it as a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.bench.SetInput(args[0])
			if _, err := a.bench.Generate(); err != nil {
				return err
			}
			card, err := a.bench.AddCard(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added card %d: %s\n%s\n", card.ID, card.Title, card.Link)
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var markdown bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deal cards, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cards := a.cards.Cards()
			out := cmd.OutOrStdout()
			if len(cards) == 0 {
				fmt.Fprintln(out, "No cards yet. Add one with 'affhub add <url>'.")
				return nil
			}

			w := table.NewWriter()
			w.SetStyle(table.StyleLight)
			w.AppendHeader(table.Row{"ID", "ASIN", "Title", "Link", "Image"})
			for _, c := range cards {
				w.AppendRow(table.Row{c.ID, c.ASIN, c.Title, c.Link, c.Image})
			}
			if markdown {
				fmt.Fprintln(out, w.RenderMarkdown())
			} else {
				fmt.Fprintln(out, w.Render())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "render as a markdown table")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var title, image string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or image of a card",
		Long: "Change the title or image of a card. Flags that are not given keep the current value;\n" +
			"an empty --image resets the card to the placeholder image.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			staged, ok := a.bench.StartEdit(id)
			if !ok {
				return fmt.Errorf("card %d not found", id)
			}
			if cmd.Flags().Changed("title") {
				staged.Title = title
			}
			if cmd.Flags().Changed("image") {
				staged.Image = image
			}
			if err := a.bench.SetEditFields(staged.Title, staged.Image); err != nil {
				return err
			}

			card, err := a.bench.SaveEdit(cmd.Context())
			if err != nil {
				a.bench.CancelEdit()
				return err
			}
			if card == nil {
				return fmt.Errorf("card %d not found", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated card %d: %s\n", card.ID, card.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&image, "image", "", "new image URL")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var confirmer ports.Confirmer = promptConfirmer{in: bufio.NewReader(a.in), out: cmd.OutOrStdout()}
			if yes {
				confirmer = ports.ConfirmFunc(alwaysYes)
			}

			removed, err := a.cards.DeleteCard(cmd.Context(), id, confirmer)
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "deleted card %d\n", id)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing deleted")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy the link of a card to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			card, ok := a.cards.Card(id)
			if !ok {
				return fmt.Errorf("card %d not found", id)
			}
			if err := a.bench.Copy(cmd.Context(), card.Link); err != nil {
				return fmt.Errorf("unable to copy to clipboard: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Copied to clipboard!")
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid card id %q", s)
	}
	return id, nil
}

func alwaysYes(context.Context, string) (bool, error) { return true, nil }
