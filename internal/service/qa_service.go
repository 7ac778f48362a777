package service

import (
	"context"
	"strings"
	"time"

	"pdf-qa-be/internal/dto"
	"pdf-qa-be/internal/entity"
	"pdf-qa-be/internal/pkg/apperror"
	"pdf-qa-be/internal/pkg/logger"
	"pdf-qa-be/internal/repository/specification"
	"pdf-qa-be/internal/repository/unitofwork"
	"pdf-qa-be/pkg/embedding"
	"pdf-qa-be/pkg/llm"
	"pdf-qa-be/pkg/rag/prompt"
	"pdf-qa-be/pkg/rag/session"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type QAOptions struct {
	TopK              int
	EmbeddingTimeout  time.Duration
	GenerationTimeout time.Duration
}

type IQAService interface {
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
	History(ctx context.Context) (*dto.HistoryResponse, error)
}

type qaService struct {
	uowFactory unitofwork.RepositoryFactory
	session    *session.RetrievalSession
	embedder   embedding.Embedder
	generator  llm.LLMProvider
	logger     logger.ILogger
	llmLogger  logger.ILogger
	opts       QAOptions
}

func NewQAService(
	uowFactory unitofwork.RepositoryFactory,
	retrievalSession *session.RetrievalSession,
	embedder embedding.Embedder,
	generator llm.LLMProvider,
	log logger.ILogger,
	llmLog logger.ILogger,
	opts QAOptions,
) IQAService {
	return &qaService{
		uowFactory: uowFactory,
		session:    retrievalSession,
		embedder:   embedder,
		generator:  generator,
		logger:     log,
		llmLogger:  llmLog,
		opts:       opts,
	}
}

// Ask answers from the top-k chunks of the active document and records the exchange.
func (s *qaService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	question := strings.TrimSpace(req.Q)
	if question == "" {
		return nil, goerr.Wrap(apperror.ErrValidation, "q is required")
	}

	// 1. Retrieve against one snapshot of the session
	embedCtx, cancel := withTimeout(ctx, s.opts.EmbeddingTimeout)
	retrieval, err := s.session.Retrieve(embedCtx, s.embedder, question, s.opts.TopK)
	cancel()
	if err != nil {
		return nil, err
	}

	// 2. Generate
	p := prompt.QA(retrieval.Context(), question)
	genCtx, cancel := withTimeout(ctx, s.opts.GenerationTimeout)
	answer, err := s.generator.Generate(genCtx, p)
	cancel()
	if err != nil {
		return nil, apperror.Upstream(err, "failed to generate answer", goerr.V("document_id", retrieval.DocumentId))
	}

	s.llmLogger.Debug("LLM", "qa", map[string]interface{}{
		"document_id": retrieval.DocumentId.String(),
		"rows":        retrieval.RowIds,
		"prompt":      p,
		"response":    answer,
	})

	// 3. Record; the answer is returned even if this fails
	s.record(ctx, retrieval.DocumentId, question, answer)

	return &dto.AskResponse{Answer: answer}, nil
}

func (s *qaService) record(ctx context.Context, documentId uuid.UUID, question, answer string) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.ChatRecordRepository().Create(ctx, &entity.ChatRecord{
		Id:         uuid.New(),
		DocumentId: documentId,
		Question:   question,
		Answer:     answer,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("QA", "Failed to save chat record", map[string]interface{}{
			"document_id": documentId.String(),
			"error":       err.Error(),
		})
	}
}

// History lists the active document's exchanges oldest first.
func (s *qaService) History(ctx context.Context) (*dto.HistoryResponse, error) {
	ready, err := s.session.Active()
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.ChatRecordRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: ready.DocumentId},
		specification.InsertionOrder{},
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load chat history", goerr.V("document_id", ready.DocumentId))
	}

	res := dto.HistoryResponse{
		DocumentId: ready.DocumentId,
		History:    make([]dto.ChatRecordResponse, 0, len(records)),
	}
	for _, r := range records {
		res.History = append(res.History, dto.ChatRecordResponse{
			Id:        r.Id,
			Question:  r.Question,
			Answer:    r.Answer,
			CreatedAt: r.CreatedAt,
		})
	}
	return &res, nil
}
