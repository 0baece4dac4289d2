package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexhub/legal-case-assistant/internal/config"
	"github.com/lexhub/legal-case-assistant/internal/core/ports"
	"github.com/lexhub/legal-case-assistant/internal/core/usecase"
	"github.com/lexhub/legal-case-assistant/internal/infrastructure/extractor"
	"github.com/lexhub/legal-case-assistant/internal/infrastructure/llm"
	"github.com/lexhub/legal-case-assistant/internal/infrastructure/llm/openai"
	"github.com/lexhub/legal-case-assistant/internal/infrastructure/queue/nats"
	"github.com/lexhub/legal-case-assistant/internal/infrastructure/repository/postgres"
	"github.com/lexhub/legal-case-assistant/internal/infrastructure/resilience"
	"github.com/lexhub/legal-case-assistant/internal/infrastructure/storage/localfs"
	miniostorage "github.com/lexhub/legal-case-assistant/internal/infrastructure/storage/minio"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue     ports.MessageQueue
	Docs      ports.DocumentRepository
	UploadUC  ports.DocumentUploader
	ProcessUC ports.DocumentProcessor
	SummaryUC ports.CaseSummarizer
	CaseUC    ports.CaseManager

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	docs := postgres.NewDocumentRepository(db)
	cases := postgres.NewCaseRepository(db)
	timeline := postgres.NewTimelineRepository(db)

	storage, err := newObjectStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, cfg.NATSQueueGroup, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
		Logger:             logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	modelClient := openai.New(cfg.LLMAPIKey, openai.Options{
		BaseURL:           cfg.LLMBaseURL,
		Timeout:           time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.LLMRequestsPerSecond,
		Executor:          resilience.NewExecutor(resilience.DefaultConfig()),
	})
	invoker := llm.NewInvoker(modelClient, time.Duration(cfg.LLMFallbackBackoffMS)*time.Millisecond)
	classifier := llm.NewClassifier(invoker, cfg.LLMModelCandidates, cfg.ClassifyHeadChars, cfg.ClassifyTailChars)
	summarizer := llm.NewSummarizer(invoker, cfg.LLMModelCandidates)
	analyst := llm.NewAnalyst(invoker, cfg.LLMCaseCandidates)

	textExtractor := extractor.NewExtractor(storage)

	uploadUC := usecase.NewUploadDocumentUseCase(cases, docs, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(docs, storage, textExtractor, classifier, summarizer, timeline, logger)
	summaryUC := usecase.NewCaseSummaryUseCase(cases, docs, storage, analyst, timeline, cfg.CaseContextChars, logger)
	caseUC := usecase.NewCaseUseCase(cases, docs, timeline)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue:     queue,
		Docs:      docs,
		UploadUC:  uploadUC,
		ProcessUC: processUC,
		SummaryUC: summaryUC,
		CaseUC:    caseUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func newObjectStorage(ctx context.Context, cfg config.Config) (ports.ObjectStorage, error) {
	switch cfg.StorageBackend {
	case "minio":
		return miniostorage.New(ctx, miniostorage.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
	default:
		return localfs.New(cfg.StoragePath)
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
