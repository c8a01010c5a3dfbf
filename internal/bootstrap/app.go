package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/account"
	"resume-builder/internal/anonprompts"
	"resume-builder/internal/generation"
	"resume-builder/internal/identity"
	"resume-builder/internal/lifedata"
	"resume-builder/internal/llm"
	"resume-builder/internal/llm/gemini"
	"resume-builder/internal/llm/openai"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/tasks"
	"resume-builder/internal/stats"
	"resume-builder/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Tasks    *tasks.Runner
	LLM      llm.Client
	Identity *identity.Provider

	UsersService      *users.Service
	ResumesService    *resumes.Service
	LifeDataService   *lifedata.Service
	PromptLog         *anonprompts.Service
	GenerationService *generation.Service
	AccountService    *account.Service
	ResumeCount       *stats.CountCache
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Tasks:  tasks.NewRunner(cfg.LLMTimeout),
	}

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.LLM = llmClient

	if err := buildServices(app); err != nil {
		return nil, err
	}
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if isDevLike(cfg.Env) {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

// buildLLM returns a nil client when no API key is configured; generation
// then answers with fallback resumes.
func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	client, err := llm.NewClient(ctx, llm.Options{
		Provider: cfg.LLMProvider,
		Model:    cfg.LLMModel,
		APIKey:   cfg.LLMAPIKey(),
		Timeout:  cfg.LLMTimeout,
	}, map[string]llm.Factory{
		llm.ProviderGemini: gemini.Factory,
		llm.ProviderOpenAI: openai.Factory,
	})
	if errors.Is(err, llm.ErrUnconfigured) {
		log.Printf("bootstrap: no API key for %s; generation will use fallback resumes", cfg.LLMProvider)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return llm.Timed{Client: client, Timeout: cfg.LLMTimeout}, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var (
		userRepo   users.Repo
		resumeRepo resumes.Repo
		promptRepo anonprompts.Repo
		lifeSvc    *lifedata.Service
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		promptRepo = &anonprompts.PGRepo{DB: app.DB}
		lifeSvc = lifedata.NewPGService(app.DB)
	} else {
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
		promptRepo = anonprompts.NewMemoryRepo()
		lifeSvc = lifedata.NewMemoryService()
	}

	secret, err := auth.SecretKey(app.Config.JWTSecret, app.Config.Env)
	if err != nil {
		return err
	}

	userSvc := users.NewService(userRepo)
	provider := identity.NewProvider(secret, userSvc, app.Config.AnonymousUserEmail)
	resumeSvc := resumes.NewService(resumeRepo)
	promptLog := anonprompts.NewService(promptRepo, app.Config.AnonymousPromptCap)
	resumeCount := stats.NewCountCache(resumeSvc.Count, app.Config.ResumeCountTTL)

	genSvc := &generation.Service{
		LLM:         app.LLM,
		Prompts:     promptLog,
		Experiences: lifeSvc,
		Tasks:       app.Tasks,
		Limits: generation.Limits{
			MaxWords: app.Config.PromptMaxWords,
			MaxChars: app.Config.PromptMaxChars,
		},
	}
	accountSvc := account.NewService(provider, resumeSvc, lifeSvc)

	app.Identity = provider
	app.UsersService = userSvc
	app.ResumesService = resumeSvc
	app.LifeDataService = lifeSvc
	app.PromptLog = promptLog
	app.GenerationService = genSvc
	app.AccountService = accountSvc
	app.ResumeCount = resumeCount

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		Authenticator:     provider,
		GenerationHandler: generation.NewHandler(genSvc),
		ResumeHandler:     resumes.NewHandler(resumeSvc),
		LifeDataHandler:   lifedata.NewHandler(lifeSvc, genSvc),
		AccountHandler:    account.NewHandler(accountSvc),
		UserHandler:       users.NewHandler(userSvc),
		StatsHandler:      stats.NewHandler(resumeCount),
		HealthHandler:     health.NewHandler(health.NewService(app.DB)),
	})
	if app.Router == nil {
		return errors.New("failed to initialize router")
	}
	return nil
}
