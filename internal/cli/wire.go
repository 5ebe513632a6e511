package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/tzofim/peula/internal/cache"
	"github.com/tzofim/peula/internal/config"
	"github.com/tzofim/peula/internal/googledocs"
	"github.com/tzofim/peula/internal/httpapi"
	"github.com/tzofim/peula/internal/intelligence"
	"github.com/tzofim/peula/internal/llm"
	"github.com/tzofim/peula/internal/logger"
	"github.com/tzofim/peula/internal/repository"
	"github.com/tzofim/peula/internal/service"
	"github.com/tzofim/peula/internal/template"
)

// Runtime holds the wired dependencies of a running server.
type Runtime struct {
	Config  config.Config
	Log     *logger.Logger
	Store   *repository.Store
	LLM     llm.LLMClient
	Cache   cache.InsightsCache
	Catalog *template.Catalog

	Peulot    service.PeulaService
	Feedback  service.FeedbackService
	Examples  service.TrainingExampleService
	Anchors   service.AnchorService
	Templates service.TemplateService
}

func openStore(cfg config.Config) (*repository.Store, error) {
	return repository.Open(repository.Options{
		Backend: repository.Backend(cfg.StoreBackend),
		Path:    cfg.DatabasePath,
		DSN:     cfg.DatabaseURL,
	})
}

func loadCatalog(cfg config.Config) (*template.Catalog, error) {
	if cfg.TemplateDir != "" {
		return template.Load(cfg.TemplateDir)
	}
	return template.Builtin()
}

// Build opens the store and wires every service. The caller owns Close.
func Build(ctx context.Context, cfg config.Config, log *logger.Logger) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Log: log}

	var err error
	if rt.Catalog, err = loadCatalog(cfg); err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	if rt.Store, err = openStore(cfg); err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		observer = llm.NewLogObserver(log)
	}
	if rt.LLM, err = llm.NewClient(cfg.LLM, observer); err != nil {
		rt.Close()
		return nil, fmt.Errorf("creating llm client: %w", err)
	}

	rt.Cache = cache.NewMemoryCache()
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("connecting insights cache: %w", err)
		}
		rt.Cache = redisCache
	}

	docs, err := googleServices(ctx, cfg.Google)
	if err != nil {
		rt.Close()
		return nil, err
	}
	if docs == nil {
		log.Warn("google docs not configured; export and import are disabled")
	}
	exporter := googledocs.NewExporter(docs, googledocs.ExportConfig{
		TemplateID: cfg.Google.DocsTemplateID,
		FolderID:   cfg.Google.DriveFolderID,
	})

	obs := service.NewLogUseCaseObserver(log)
	rt.Peulot = service.NewPeulaService(
		rt.Store.Peulot, rt.Store.Feedback, rt.Store.TrainingExamples,
		rt.Catalog, intelligence.NewPeulaGenerator(rt.LLM), exporter, obs,
	)
	rt.Feedback = service.NewFeedbackService(rt.Store.Feedback, rt.Store.Peulot, obs)
	rt.Examples = service.NewTrainingExampleService(service.TrainingExampleDeps{
		Examples:   rt.Store.TrainingExamples,
		Summarizer: intelligence.NewInsightsSummarizer(rt.LLM),
		Cache:      rt.Cache,
		CacheTTL:   cfg.InsightsCacheTTL,
		Documents:  googledocs.NewReader(docs),
	}, obs)
	rt.Anchors = service.NewAnchorService(rt.Store.Anchors, obs)
	rt.Templates = service.NewTemplateService(rt.Catalog)

	log.Info("runtime ready",
		"store", rt.Store.Backend,
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.Model,
		"export", exporterTarget(cfg.Google),
	)
	return rt, nil
}

func exporterTarget(g config.GoogleConfig) string {
	if !g.Configured() {
		return "disabled"
	}
	return googledocs.ExportConfig{TemplateID: g.DocsTemplateID}.String()
}

// googleServices returns nil, nil when no credentials are configured.
func googleServices(ctx context.Context, g config.GoogleConfig) (*googledocs.Services, error) {
	if !g.Configured() {
		return nil, nil
	}
	key, err := googledocs.LoadServiceAccountKey(g.CredentialsJSON, g.CredentialsFile)
	if err != nil {
		return nil, err
	}
	provider, err := googledocs.NewServiceAccountProvider(key)
	if err != nil {
		return nil, err
	}
	svc, err := googledocs.NewServices(ctx, provider)
	if err != nil {
		return nil, fmt.Errorf("creating google clients: %w", err)
	}
	return svc, nil
}

// Router mounts every handler.
func (rt *Runtime) Router() *gin.Engine {
	return httpapi.NewRouter(httpapi.RouterConfig{
		Log:                    rt.Log,
		CORSOrigins:            rt.Config.CORSOrigins,
		PeulaHandler:           httpapi.NewPeulaHandler(rt.Peulot, rt.Log),
		FeedbackHandler:        httpapi.NewFeedbackHandler(rt.Feedback, rt.Log),
		TrainingExampleHandler: httpapi.NewTrainingExampleHandler(rt.Examples, rt.Log),
		AnchorHandler:          httpapi.NewAnchorHandler(rt.Anchors, rt.Log),
		TemplateHandler:        httpapi.NewTemplateHandler(rt.Templates, rt.Log),
		HealthHandler:          httpapi.NewHealthHandler(rt.Store, rt.LLM, rt.Log),
	})
}

func (rt *Runtime) Close() error {
	var errs []error
	if rt.Cache != nil {
		errs = append(errs, rt.Cache.Close())
	}
	if rt.Store != nil {
		errs = append(errs, rt.Store.Close())
	}
	return errors.Join(errs...)
}
