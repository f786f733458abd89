package main

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/domain"
)

func newStoreIDCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "store-id [new-id]",
		Short: "Show or change the affiliate store id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := a.cards.SetStoreID(cmd.Context(), args[0]); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.cards.StoreID())
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write all cards as JSON to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(a.cards.Cards()); err != nil {
				return fmt.Errorf("encode failed: %w", err)
			}
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	var (
		file    string
		replace bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Merge cards from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("failed to open file: %w", err)
			}
			defer f.Close()

			var cards []domain.Card
			if err := json.NewDecoder(f).Decode(&cards); err != nil {
				return fmt.Errorf("decode failed: %w", err)
			}

			if replace {
				if err := a.cards.ReplaceCards(cmd.Context(), cards); err != nil {
					return err
				}
				log.Infof("Replaced collection with %d cards", len(cards))
				fmt.Fprintf(cmd.OutOrStdout(), "replaced collection with %d cards\n", len(cards))
				return nil
			}

			n, err := a.cards.ImportCards(cmd.Context(), cards)
			if err != nil {
				return err
			}
			log.Infof("Imported %d cards", n)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d cards\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON file to import")
	cmd.Flags().BoolVar(&replace, "replace", false, "replace the collection instead of merging")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
