package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/register-graph/internal/application/handlers"
	"github.com/ersonp/register-graph/internal/domain/ports"
	"github.com/ersonp/register-graph/internal/domain/services"
	"github.com/ersonp/register-graph/internal/infrastructure/config"
	"github.com/ersonp/register-graph/internal/infrastructure/httpclient"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
	ner "github.com/ersonp/register-graph/internal/infrastructure/ner/openai"
	"github.com/ersonp/register-graph/internal/infrastructure/parsers"
	"github.com/ersonp/register-graph/internal/infrastructure/postal"
	"github.com/ersonp/register-graph/internal/infrastructure/registries/companieshouse"
	"github.com/ersonp/register-graph/internal/infrastructure/registries/findthatcharity"
	"github.com/ersonp/register-graph/internal/infrastructure/registries/opencorporates"
	"github.com/ersonp/register-graph/internal/infrastructure/relationaldb/sqlite"
)

// resolveDeps holds the wired dependencies for the resolve command.
type resolveDeps struct {
	Config  *config.Config
	Log     *logger.Logger
	Handler *handlers.ResolveHandler
}

// withResolveDeps loads config, builds the resolution stack and calls fn.
// Cleanup is handled on return.
func withResolveDeps(ctx context.Context, interactive bool, overridesFile string, fn func(*resolveDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Logging.Mode, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	httpClient := httpclient.New(log,
		httpclient.WithTimeout(cfg.HTTP.Timeout),
		httpclient.WithMaxRetries(cfg.HTTP.MaxRetries),
		httpclient.WithBackoff(cfg.HTTP.Backoff, cfg.HTTP.MaxBackoff),
	)

	corporate := opencorporates.New(httpClient, cfg.Registries.OpenCorporatesURL, cfg.Registries.OpenCorporatesAPIKey, log)
	charity := findthatcharity.New(httpClient, cfg.Registries.FindThatCharityURL, log)
	numbers := companieshouse.New(httpClient, cfg.Registries.CompaniesHouseURL, cfg.Registries.CompaniesHouseAPIKey, log)

	tagger, err := ner.NewTagger(cfg.NER)
	if err != nil {
		return fmt.Errorf("creating entity tagger: %w", err)
	}

	var customStore ports.CustomStore
	var sqliteRepo *sqlite.Repository
	if cfg.SQLite.Path != "" {
		sqliteRepo, err = sqlite.NewRepository(cfg.SQLite)
		if err != nil {
			return fmt.Errorf("creating sqlite repository: %w", err)
		}
		defer sqliteRepo.Close()
		if err := sqliteRepo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensuring sqlite schema: %w", err)
		}
		customStore = sqliteRepo
	}

	var overrides *services.OverrideTable
	if overridesFile != "" {
		pairs, err := loadOverrides(overridesFile)
		if err != nil {
			return err
		}
		overrides = services.NewOverrideTable(pairs, log)
	}

	var callback ports.UnresolvedCallback
	if interactive {
		callback = newPromptCallback(os.Stdin, os.Stdout, log)
	}

	store := services.NewEntityStore(log)
	resolver := services.NewResolverService(corporate, charity, numbers, log)
	pipeline := services.NewPipelineService(
		store,
		resolver,
		tagger,
		postal.New(),
		callback,
		customStore,
		overrides,
		log,
	)

	deps := &resolveDeps{
		Config:  cfg,
		Log:     log,
		Handler: handlers.NewResolveHandler(pipeline, store),
	}
	return fn(deps)
}

func loadOverrides(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening overrides file: %w", err)
	}
	defer file.Close()

	pairs, err := parsers.ReadOverrides(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return pairs, nil
}
