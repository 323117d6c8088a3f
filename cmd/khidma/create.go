package main

import (
	"context"
	"fmt"

	"github.com/khidmahq/khidma/internal/config"
	"github.com/khidmahq/khidma/internal/draft"
	"github.com/khidmahq/khidma/internal/identity"
	"github.com/khidmahq/khidma/internal/listing"
	"github.com/khidmahq/khidma/internal/logger"
	"github.com/khidmahq/khidma/internal/nats"
	"github.com/khidmahq/khidma/internal/publish"
	"github.com/khidmahq/khidma/internal/tui/listingwizard"
	"github.com/khidmahq/khidma/internal/wizard"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a service listing in the five-step wizard",
	Long: `Open the listing wizard: basics, description, pricing, portfolio,
then review and publish. The draft auto-saves every 30 seconds and on every
step change; quit at any point and 'khidma create' resumes where you left off.`,
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()

	// Embedded NATS backs the draft bucket; no network ports involved.
	ns, err := nats.StartEmbeddedNATS(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("starting embedded NATS: %w", err)
	}
	nc, err := nats.ConnectInProcess(ns)
	if err != nil {
		ns.Shutdown()
		return fmt.Errorf("connecting to embedded NATS: %w", err)
	}
	defer func() { _ = nats.Shutdown(nc, ns) }()

	js, err := nats.CreateJetStream(nc)
	if err != nil {
		return fmt.Errorf("creating JetStream context: %w", err)
	}
	kv, err := nats.SetupDraftBucket(ctx, js)
	if err != nil {
		return fmt.Errorf("setting up draft bucket: %w", err)
	}

	store := draft.NewStore(kv)

	seller := identity.SellerName(cfg.SellerName)
	logger.Info("Starting listing wizard for %s", seller)

	ctrl := wizard.NewController(store, func(l *listing.Listing) (string, error) {
		return publish.WriteListing(cfg.DataDir, l)
	})

	return listingwizard.Run(cfg, ctrl)
}
