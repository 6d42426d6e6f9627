package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cateringlab/checklist/internal/cliconfig"
	"github.com/cateringlab/checklist/pkg/checklist"
	"github.com/cateringlab/checklist/pkg/client"
	"github.com/cateringlab/checklist/pkg/form"
	"github.com/cateringlab/checklist/pkg/prompt"
	"github.com/cateringlab/checklist/pkg/recent"
	"github.com/cateringlab/checklist/pkg/summary"
	"github.com/cateringlab/checklist/pkg/wire"
	"github.com/cateringlab/checklist/pkg/wizard"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "settings file")
	variant := flag.String("type", "box", "checklist variant: box or catering")
	draftID := flag.Int64("id", 0, "resume an existing draft")
	output := flag.String("output", "", "write the summary HTML here on completion (stdout if empty)")
	flag.Parse()

	cfg, err := cliconfig.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := buildLogger(cfg.LogLevel())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	api, err := client.New(cfg.BaseURL(), client.WithToken(cfg.Token()))
	if err != nil {
		log.Fatalf("backend client: %v", err)
	}

	contract, err := wire.Load()
	if err != nil {
		log.Fatalf("load contract: %v", err)
	}

	recents := openRecents(cfg, logger)
	if closer, ok := recents.(*recent.BoltCache); ok {
		defer func() { _ = closer.Close() }()
	}

	ctx := context.Background()

	draft, err := resolveDraft(ctx, api, *variant, *draftID)
	if err != nil {
		log.Fatalf("draft: %v", err)
	}

	scheduler := form.NewScheduler(func(ctx context.Context, d *checklist.Draft) error {
		return api.Update(ctx, d.ID, d)
	}, form.WithLogger(logger))

	store, err := form.NewStore(draft, form.WithScheduler(scheduler))
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	ctrl, err := wizard.New(store, api,
		wizard.WithScheduler(scheduler),
		wizard.WithRecentFormats(recents),
		wizard.WithWireCheck(contract.ValidateDraft),
		wizard.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("wizard: %v", err)
	}

	session := prompt.NewSession(prompt.NewSurveyDriver(), ctrl, store)
	if err := session.Run(ctx); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			ctrl.Cancel()
			fmt.Println("Aborted.")
			return
		}
		log.Fatalf("session: %v", err)
	}

	if !ctrl.Done() {
		return
	}
	if err := writeSummary(draft, *output); err != nil {
		log.Fatalf("summary: %v", err)
	}
}

func defaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(base, "checklist", "config.toml")
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}

// openRecents prefers the on-disk cache so format history survives restarts;
// an unopenable database degrades to the in-memory slot.
func openRecents(cfg cliconfig.Settings, logger *zap.Logger) recent.Cache {
	path, err := cfg.StoragePath()
	if err != nil {
		logger.Warn("recent formats storage path unavailable", zap.Error(err))
		return recent.NewMemory()
	}
	cache, err := recent.OpenBolt(path)
	if err != nil {
		logger.Warn("recent formats database unavailable", zap.String("path", path), zap.Error(err))
		return recent.NewMemory()
	}
	return cache
}

func resolveDraft(ctx context.Context, api *client.Client, variant string, id int64) (*checklist.Draft, error) {
	if id != 0 {
		return api.Get(ctx, id)
	}
	switch checklist.Type(variant) {
	case checklist.TypeBox, checklist.TypeCatering:
		return checklist.New(checklist.Type(variant)), nil
	default:
		return nil, fmt.Errorf("unknown checklist type %q", variant)
	}
}

func writeSummary(draft *checklist.Draft, output string) error {
	html, err := summary.New().Render(draft)
	if err != nil {
		return err
	}
	if output == "" {
		fmt.Println(string(html))
		return nil
	}
	if err := os.WriteFile(output, html, 0o644); err != nil {
		return err
	}
	fmt.Printf("Summary written to %s\n", output)
	return nil
}
