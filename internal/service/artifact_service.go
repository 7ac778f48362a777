package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"pdf-qa-be/internal/dto"
	"pdf-qa-be/internal/pkg/apperror"
	"pdf-qa-be/internal/pkg/logger"
	"pdf-qa-be/internal/repository/contract"
	"pdf-qa-be/internal/repository/unitofwork"
	"pdf-qa-be/pkg/events"
	"pdf-qa-be/pkg/llm"
	"pdf-qa-be/pkg/pdf"
	"pdf-qa-be/pkg/rag/artifact"
	"pdf-qa-be/pkg/rag/prompt"
	"pdf-qa-be/pkg/rag/session"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type ArtifactOptions struct {
	ContextChunks     int
	GenerationTimeout time.Duration
	ExportDir         string
}

type IArtifactService interface {
	// Get returns the stored artifact of the active document, generating it once if absent.
	Get(ctx context.Context, kind artifact.Kind) (string, error)
	// Export renders a previously generated artifact as a PDF.
	Export(ctx context.Context, kind artifact.Kind) (*dto.ExportFile, error)
}

type artifactService struct {
	uowFactory unitofwork.RepositoryFactory
	session    *session.RetrievalSession
	generator  llm.LLMProvider
	cache      contract.ArtifactCache
	renderer   pdf.Renderer
	publisher  IPublisherService
	logger     logger.ILogger
	llmLogger  logger.ILogger
	opts       ArtifactOptions

	// One lock per document+kind so concurrent first requests generate once.
	genLocks sync.Map
	// One lock per kind; exports of a kind share a file name.
	exportLocks map[artifact.Kind]*sync.Mutex
}

func NewArtifactService(
	uowFactory unitofwork.RepositoryFactory,
	retrievalSession *session.RetrievalSession,
	generator llm.LLMProvider,
	cache contract.ArtifactCache,
	renderer pdf.Renderer,
	publisher IPublisherService,
	log logger.ILogger,
	llmLog logger.ILogger,
	opts ArtifactOptions,
) IArtifactService {
	exportLocks := make(map[artifact.Kind]*sync.Mutex, len(artifact.All))
	for _, k := range artifact.All {
		exportLocks[k] = &sync.Mutex{}
	}
	return &artifactService{
		uowFactory:  uowFactory,
		session:     retrievalSession,
		generator:   generator,
		cache:       cache,
		renderer:    renderer,
		publisher:   publisher,
		logger:      log,
		llmLogger:   llmLog,
		opts:        opts,
		exportLocks: exportLocks,
	}
}

func (s *artifactService) Get(ctx context.Context, kind artifact.Kind) (string, error) {
	ready, err := s.session.Active()
	if err != nil {
		return "", err
	}
	if len(ready.Chunks) == 0 {
		return "", goerr.Wrap(apperror.ErrNotReady, "active document has no text", goerr.V("document_id", ready.DocumentId))
	}

	if value, ok, err := s.stored(ctx, ready.DocumentId, kind); err != nil || ok {
		return value, err
	}

	lock := s.genLock(ready.DocumentId, kind)
	lock.Lock()
	defer lock.Unlock()

	// Another request may have generated it while we waited.
	if value, ok, err := s.stored(ctx, ready.DocumentId, kind); err != nil || ok {
		return value, err
	}

	p, err := prompt.Artifact(kind, strings.Join(ready.Lead(s.opts.ContextChunks), " "))
	if err != nil {
		return "", goerr.Wrap(apperror.ErrValidation, err.Error())
	}

	genCtx, cancel := withTimeout(ctx, s.opts.GenerationTimeout)
	value, err := s.generator.Generate(genCtx, p)
	cancel()
	if err != nil {
		return "", apperror.Upstream(err, "failed to generate artifact",
			goerr.V("document_id", ready.DocumentId),
			goerr.V("kind", kind),
		)
	}

	s.llmLogger.Debug("LLM", string(kind), map[string]interface{}{
		"document_id": ready.DocumentId.String(),
		"prompt":      p,
		"response":    value,
	})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.GeneratedArtifactRepository().SetField(ctx, ready.DocumentId, kind, value); err != nil {
		return "", goerr.Wrap(err, "failed to save artifact",
			goerr.V("document_id", ready.DocumentId),
			goerr.V("kind", kind),
		)
	}
	if value != "" {
		s.cache.Set(ctx, ready.DocumentId, kind, value)
	}

	if err := s.publisher.Publish(ctx, events.ArtifactGenerated(ready.DocumentId.String(), string(kind))); err != nil {
		s.logger.Warn("ARTIFACT", "Failed to publish ARTIFACT_GENERATED event", map[string]interface{}{
			"document_id": ready.DocumentId.String(),
			"kind":        string(kind),
			"error":       err.Error(),
		})
	}

	return value, nil
}

// stored looks in the hot cache, then the database. Database hits warm the cache.
func (s *artifactService) stored(ctx context.Context, documentId uuid.UUID, kind artifact.Kind) (string, bool, error) {
	if value, ok := s.cache.Get(ctx, documentId, kind); ok {
		return value, true, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	row, err := uow.GeneratedArtifactRepository().FindByDocumentId(ctx, documentId)
	if err != nil {
		return "", false, goerr.Wrap(err, "failed to load artifacts", goerr.V("document_id", documentId))
	}
	value, ok := row.Field(kind)
	if ok {
		s.cache.Set(ctx, documentId, kind, value)
	}
	return value, ok, nil
}

func (s *artifactService) genLock(documentId uuid.UUID, kind artifact.Kind) *sync.Mutex {
	lock, _ := s.genLocks.LoadOrStore(contract.ArtifactCacheKey(documentId, kind), &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *artifactService) Export(ctx context.Context, kind artifact.Kind) (*dto.ExportFile, error) {
	ready, err := s.session.Active()
	if err != nil {
		return nil, goerr.Wrap(apperror.ErrArtifactNotGenerated, "no active document", goerr.V("kind", kind))
	}

	value, ok, err := s.stored(ctx, ready.DocumentId, kind)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, goerr.Wrap(apperror.ErrArtifactNotGenerated, "nothing to export",
			goerr.V("document_id", ready.DocumentId),
			goerr.V("kind", kind),
		)
	}

	lock, known := s.exportLocks[kind]
	if !known {
		return nil, goerr.Wrap(apperror.ErrValidation, "unknown artifact kind", goerr.V("kind", kind))
	}
	lock.Lock()
	defer lock.Unlock()

	content, err := s.renderer.Render(value)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render artifact", goerr.V("kind", kind))
	}

	if err := os.MkdirAll(s.opts.ExportDir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create export directory", goerr.V("dir", s.opts.ExportDir))
	}
	path := filepath.Join(s.opts.ExportDir, kind.FileName())
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return nil, goerr.Wrap(err, "failed to write export", goerr.V("path", path))
	}

	s.logger.Info("EXPORT", "Artifact exported", map[string]interface{}{
		"document_id": ready.DocumentId.String(),
		"kind":        string(kind),
		"path":        path,
		"bytes":       len(content),
	})

	return &dto.ExportFile{FileName: kind.FileName(), Content: content}, nil
}
