package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/adapters/clipboard"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/adapters/repository"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/config"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/services"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/logging"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/ports"
)

// app carries what every subcommand needs. Fields left nil are filled in
// from the config before the first command runs.
type app struct {
	cards     *services.CardService
	bench     *services.Workbench
	clipboard ports.Clipboard
	in        io.Reader
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "affhub",
		Short:         "Generate Amazon affiliate links and curate deal cards",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
	}

	root.AddCommand(
		newGenerateCmd(a),
		newPasteCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newCopyCmd(a),
		newStoreIDCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return root
}

func (a *app) init(ctx context.Context) error {
	if a.in == nil {
		a.in = os.Stdin
	}
	if a.clipboard == nil {
		a.clipboard = clipboard.New()
	}
	if a.cards == nil {
		cfg := config.Load()
		if err := logging.Setup(cfg.LogLevel, cfg.LogFile); err != nil {
			return err
		}
		repo, err := repository.Open(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		a.cards = services.NewCardService(repo, cfg.DefaultStoreID)
		if err := a.cards.Load(ctx); err != nil {
			return err
		}
		log.Debugf("loaded %d cards", len(a.cards.Cards()))
	}
	if a.bench == nil {
		a.bench = services.NewWorkbench(a.cards, a.clipboard)
	}
	return nil
}

// promptConfirmer asks on the command's output and reads y/N from in.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
