package main

import (
	"context"
	"fmt"

	"charm.land/glamour/v2"
	"github.com/khidmahq/khidma/internal/config"
	"github.com/khidmahq/khidma/internal/draft"
	"github.com/khidmahq/khidma/internal/identity"
	"github.com/khidmahq/khidma/internal/nats"
	"github.com/khidmahq/khidma/internal/publish"
	"github.com/spf13/cobra"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Inspect or discard the saved listing draft",
}

var draftsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Render the saved draft as it would publish",
	RunE:  runDraftsShow,
}

var draftsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the saved draft",
	RunE:  runDraftsClear,
}

func init() {
	draftsCmd.AddCommand(draftsShowCmd)
	draftsCmd.AddCommand(draftsClearCmd)
}

// withDraftStore runs fn against the draft store over a short-lived embedded
// NATS instance.
func withDraftStore(fn func(ctx context.Context, store *draft.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()

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

	return fn(ctx, draft.NewStore(kv))
}

func runDraftsShow(cmd *cobra.Command, args []string) error {
	return withDraftStore(func(ctx context.Context, store *draft.Store) error {
		p, ok := store.Load(ctx)
		if !ok {
			fmt.Println("No draft saved. Run 'khidma create' to start one.")
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		l := p.Hydrate()
		md := publish.Markdown(l)

		fmt.Printf("Draft by %s (attached images are previews only until publish)\n\n",
			identity.SellerName(cfg.SellerName))

		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			fmt.Println(md)
			return nil
		}
		out, err := r.Render(md)
		if err != nil {
			fmt.Println(md)
			return nil
		}
		fmt.Print(out)
		return nil
	})
}

func runDraftsClear(cmd *cobra.Command, args []string) error {
	return withDraftStore(func(ctx context.Context, store *draft.Store) error {
		store.Clear(ctx)
		fmt.Println("Draft cleared.")
		return nil
	})
}
