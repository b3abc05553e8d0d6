package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tonypottakkal/verba-resume-journal/internal/config"
	"github.com/tonypottakkal/verba-resume-journal/internal/db"
	"github.com/tonypottakkal/verba-resume-journal/internal/extraction"
	"github.com/tonypottakkal/verba-resume-journal/internal/llm"
	"github.com/tonypottakkal/verba-resume-journal/internal/logging"
	"github.com/tonypottakkal/verba-resume-journal/internal/resume"
	"github.com/tonypottakkal/verba-resume-journal/internal/search"
	"github.com/tonypottakkal/verba-resume-journal/internal/skills"
	"github.com/tonypottakkal/verba-resume-journal/internal/store"
	"github.com/tonypottakkal/verba-resume-journal/internal/worklog"
)

// app holds the wired services shared by the CLI commands.
type app struct {
	cfg       *config.Config
	log       *zap.SugaredLogger
	client    llm.Client
	extractor *extraction.Extractor
	worklogs  *worklog.Manager
	generator *resume.Generator
	skills    store.SkillStore
	database  *db.DB
	index     *search.Index
}

// newApp wires the services from configuration. An empty DatabaseURL selects
// the in-memory stores, which only make sense for one-shot commands.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Debug)
	if err != nil {
		return nil, err
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable)")
	}

	modelCfg := llm.DefaultConfig()
	if cfg.ExtractModel != "" {
		modelCfg = modelCfg.WithModel(llm.TierExtract, cfg.ExtractModel)
	}
	if cfg.GenerateModel != "" {
		modelCfg = modelCfg.WithModel(llm.TierGenerate, cfg.GenerateModel)
	}
	client, err := llm.NewGeminiClient(ctx, modelCfg, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, client: client}

	var (
		logStore    store.WorkLogStore
		skillStore  store.SkillStore
		resumeStore store.ResumeStore
	)
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
		a.database = database
		logStore = database.WorkLogs()
		skillStore = database.Skills()
		resumeStore = database.Resumes()
	} else {
		log.Warn("no DATABASE_URL configured, using in-memory stores")
		logStore = store.NewMemoryWorkLogStore()
		skillStore = store.NewMemorySkillStore()
		resumeStore = store.NewMemoryResumeStore()
	}
	a.skills = skillStore

	index, err := search.NewIndex(cfg.IndexPath)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.index = index

	a.extractor = extraction.NewExtractor(client, log)

	recorder, err := skills.NewRecorder(skillStore, worklog.SourceTimestamps{Logs: logStore}, cfg.ProficiencyWeights, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.worklogs = worklog.NewManager(logStore, a.extractor, recorder, index, log)

	a.generator, err = resume.NewGenerator(a.extractor, index, client, resumeStore, cfg.Ranking, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

// Close releases the app's resources.
func (a *app) Close() {
	if a.index != nil {
		if err := a.index.Close(); err != nil {
			a.log.Warnw("failed to close search index", "error", err)
		}
	}
	if a.database != nil {
		a.database.Close()
	}
	if a.client != nil {
		if err := a.client.Close(); err != nil {
			a.log.Warnw("failed to close model client", "error", err)
		}
	}
	_ = a.log.Sync()
}
