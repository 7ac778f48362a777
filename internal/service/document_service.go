package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdf-qa-be/internal/dto"
	"pdf-qa-be/internal/entity"
	"pdf-qa-be/internal/pkg/apperror"
	"pdf-qa-be/internal/pkg/logger"
	"pdf-qa-be/internal/repository/specification"
	"pdf-qa-be/internal/repository/unitofwork"
	"pdf-qa-be/pkg/chunker"
	"pdf-qa-be/pkg/embedding"
	"pdf-qa-be/pkg/events"
	"pdf-qa-be/pkg/pdf"
	"pdf-qa-be/pkg/rag/session"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

const pdfContentType = "application/pdf"

type UploadOptions struct {
	UploadDir        string
	Chunking         chunker.Config
	EmbeddingTimeout time.Duration
}

type IDocumentService interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context) (*dto.ListDocumentsResponse, error)
}

type documentService struct {
	uowFactory   unitofwork.RepositoryFactory
	session      *session.RetrievalSession
	extractor    pdf.Extractor
	embedder     embedding.Embedder
	indexBuilder IIndexBuilder
	publisher    IPublisherService
	logger       logger.ILogger
	opts         UploadOptions
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	retrievalSession *session.RetrievalSession,
	extractor pdf.Extractor,
	embedder embedding.Embedder,
	indexBuilder IIndexBuilder,
	publisher IPublisherService,
	log logger.ILogger,
	opts UploadOptions,
) IDocumentService {
	return &documentService{
		uowFactory:   uowFactory,
		session:      retrievalSession,
		extractor:    extractor,
		embedder:     embedder,
		indexBuilder: indexBuilder,
		publisher:    publisher,
		logger:       log,
		opts:         opts,
	}
}

// Upload extracts, chunks, embeds and indexes a PDF, then makes it the active document.
// Nothing is persisted and the active document is unchanged unless every step succeeds.
// A PDF without text still replaces the active document.
func (s *documentService) Upload(ctx context.Context, filename, contentType string, data []byte) (*dto.UploadDocumentResponse, error) {
	if contentType != pdfContentType {
		return nil, goerr.Wrap(apperror.ErrValidation, "only PDF allowed", goerr.V("content_type", contentType))
	}
	filename = filepath.Base(filename)
	if filename == "." || filename == string(filepath.Separator) {
		return nil, goerr.Wrap(apperror.ErrValidation, "file name is required")
	}

	// 1. Chunking config is checked before any work.
	splitter, err := chunker.New(s.opts.Chunking)
	if err != nil {
		return nil, err
	}

	// 2. Extract
	extracted, err := s.extractor.Extract(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract text", goerr.V("filename", filename))
	}

	// 3. Chunk. A text-less PDF still becomes the active document, with an
	// empty index that answers every query with ErrNotReady.
	chunks := splitter.Split(extracted.Text)

	// 4. Embed all chunks in one batch
	vectors := [][]float32{}
	if len(chunks) > 0 {
		embedCtx, cancel := withTimeout(ctx, s.opts.EmbeddingTimeout)
		vectors, err = s.embedder.Encode(embedCtx, chunks)
		cancel()
		if err != nil {
			return nil, apperror.Upstream(err, "failed to embed chunks", goerr.V("chunks", len(chunks)))
		}
		if len(vectors) != len(chunks) {
			return nil, goerr.Wrap(apperror.ErrUpstream, "embedder returned wrong number of vectors",
				goerr.V("chunks", len(chunks)),
				goerr.V("vectors", len(vectors)),
			)
		}
	}

	// 5. Persist file, Document row and index rows together
	documentId := uuid.New()
	storedPath, err := s.store(documentId, filename, data)
	if err != nil {
		return nil, err
	}

	document := entity.Document{
		Id:         documentId,
		Filename:   filename,
		StoredPath: storedPath,
		UploadTime: time.Now().UTC(),
		Metadata: entity.DocumentMetadata{
			Pages:  extracted.Pages,
			Words:  len(strings.Fields(extracted.Text)),
			Chunks: len(chunks),
		},
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		s.discard(storedPath)
		return nil, goerr.Wrap(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		s.discard(storedPath)
		return nil, goerr.Wrap(err, "failed to create document", goerr.V("filename", filename))
	}

	index, err := s.indexBuilder.Build(ctx, uow, documentId, chunks, vectors)
	if err != nil {
		s.discard(storedPath)
		return nil, goerr.Wrap(err, "failed to build index", goerr.V("document_id", documentId))
	}

	if err := uow.Commit(); err != nil {
		s.discard(storedPath)
		return nil, goerr.Wrap(err, "failed to commit document", goerr.V("document_id", documentId))
	}

	// 6. Activate
	if err := s.session.Replace(session.Ready{
		DocumentId: documentId,
		Filename:   filename,
		Chunks:     chunks,
		Index:      index,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to activate document")
	}

	if len(chunks) == 0 {
		s.logger.Warn("UPLOAD", "Document has no extractable text", map[string]interface{}{
			"document_id": documentId.String(),
			"filename":    filename,
			"pages":       extracted.Pages,
		})
	}

	s.logger.Info("UPLOAD", "Document activated", map[string]interface{}{
		"document_id": documentId.String(),
		"filename":    filename,
		"pages":       extracted.Pages,
		"chunks":      len(chunks),
	})

	if err := s.publisher.Publish(ctx, events.DocumentActivated(documentId.String(), filename, len(chunks))); err != nil {
		s.logger.Warn("UPLOAD", "Failed to publish DOCUMENT_ACTIVATED event", map[string]interface{}{
			"document_id": documentId.String(),
			"error":       err.Error(),
		})
	}

	return &dto.UploadDocumentResponse{Message: "PDF uploaded and activated"}, nil
}

func (s *documentService) store(documentId uuid.UUID, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.opts.UploadDir, 0o755); err != nil {
		return "", goerr.Wrap(err, "failed to create upload directory", goerr.V("dir", s.opts.UploadDir))
	}
	path := filepath.Join(s.opts.UploadDir, documentId.String()+"_"+filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", goerr.Wrap(err, "failed to store upload", goerr.V("path", path))
	}
	return path, nil
}

func (s *documentService) discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("UPLOAD", "Failed to remove stored upload", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}
}

func (s *documentService) List(ctx context.Context) (*dto.ListDocumentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx, specification.NewestUploadFirst{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list documents")
	}

	res := dto.ListDocumentsResponse{Documents: make([]dto.DocumentResponse, 0, len(documents))}
	for _, d := range documents {
		res.Documents = append(res.Documents, dto.DocumentResponse{
			Id:         d.Id,
			Filename:   d.Filename,
			UploadTime: d.UploadTime,
			Pages:      d.Metadata.Pages,
			Words:      d.Metadata.Words,
			Chunks:     d.Metadata.Chunks,
		})
	}
	return &res, nil
}
