package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/affiliate"
)

func newGenerateCmd(a *app) *cobra.Command {
	var copyLink bool
	cmd := &cobra.Command{
		Use:   "generate <url>",
		Short: "Print the affiliate link for a product URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := affiliate.Resolve(args[0], a.cards.StoreID())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Link)
			if res.CanonicalLink != "" {
				fmt.Fprintf(out, "canonical: %s\n", res.CanonicalLink)
			}
			if copyLink {
				if err := a.bench.Copy(cmd.Context(), res.Link); err != nil {
					return err
				}
				fmt.Fprintln(out, "Copied to clipboard!")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyLink, "copy", false, "copy the link to the clipboard")
	return cmd
}

func newPasteCmd(a *app) *cobra.Command {
	var addCard bool
	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Generate an affiliate link from the URL on the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.bench.Paste(cmd.Context()); err != nil {
				return fmt.Errorf("unable to read clipboard: %w", err)
			}
			link, err := a.bench.Generate()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, link)
			if !addCard {
				return nil
			}
			card, err := a.bench.AddCard(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "added card %d: %s\n", card.ID, card.Title)
			return nil
		},
	}
	cmd.Flags().BoolVar(&addCard, "add", false, "also add the link as a card")
	return cmd
}
