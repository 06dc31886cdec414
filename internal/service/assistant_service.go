package service

import (
	"context"

	"ai-resume-be/internal/dto"
	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/pkg/logger"
	"ai-resume-be/internal/pkg/serverutils"
	"ai-resume-be/internal/repository/specification"
	"ai-resume-be/internal/repository/unitofwork"
	"ai-resume-be/pkg/events"
	"ai-resume-be/pkg/orchestrator"
	"ai-resume-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAssistantService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	ListMessages(ctx context.Context, id uuid.UUID, limit, offset int) ([]*dto.MessageResponse, error)
	Chat(ctx context.Context, id uuid.UUID, req *dto.ChatRequest) (*dto.ChatAcceptedResponse, error)
}

type assistantService struct {
	uowFactory  unitofwork.RepositoryFactory
	sessions    store.SessionStore
	orch        *orchestrator.Orchestrator
	transcripts ITranscriptPublisher
	bus         orchestrator.EventPublisher // optional
	logger      logger.ILogger
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	sessions store.SessionStore,
	orch *orchestrator.Orchestrator,
	transcripts ITranscriptPublisher,
	bus orchestrator.EventPublisher,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		uowFactory:  uowFactory,
		sessions:    sessions,
		orch:        orch,
		transcripts: transcripts,
		bus:         bus,
		logger:      log,
	}
}

func (s *assistantService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	title := req.Title
	if title == "" {
		title = "My Resume"
	}

	record := &entity.ResumeSession{
		Id:    uuid.New(),
		Title: title,
		State: store.StateIdle,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ResumeSessionRepository().Create(ctx, record); err != nil {
		return nil, err
	}

	s.sessions.Save(&store.Session{
		ID:    record.Id.String(),
		State: store.StateIdle,
	})

	if s.bus != nil {
		if err := s.bus.Publish(ctx, events.NewSessionStarted(record.Id.String())); err != nil {
			s.logger.Warn("Assistant", "Failed to publish session started", map[string]interface{}{
				"session_id": record.Id, "error": err.Error(),
			})
		}
	}

	s.logger.Info("Assistant", "Session created", map[string]interface{}{"session_id": record.Id})
	return sessionResponse(record), nil
}

func (s *assistantService) GetSession(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	record, err := s.findSession(ctx, id)
	if err != nil {
		return nil, err
	}

	// The live store is fresher than the durable row while a message is in
	// flight, so prefer it when present.
	if live, ok := s.sessions.Get(id.String()); ok {
		record.State = live.State
		record.Document = live.Document
		record.Facts = live.Facts
	}

	return sessionResponse(record), nil
}

func (s *assistantService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findSession(ctx, id); err != nil {
		return err
	}

	s.sessions.Delete(id.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().DeleteAllBySessionId(ctx, id); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.ResumeSessionRepository().Delete(ctx, id); err != nil {
		uow.Rollback()
		return err
	}
	return uow.Commit()
}

func (s *assistantService) ListMessages(ctx context.Context, id uuid.UUID, limit, offset int) ([]*dto.MessageResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByResumeSessionID{ResumeSessionID: id},
		specification.OrderBy{Field: "created_at"},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.MessageResponse, len(messages))
	for i, m := range messages {
		out[i] = &dto.MessageResponse{
			Id:      m.Id,
			Role:    m.Role,
			Chat:    m.Chat,
			Intent:  m.Intent,
			Created: m.CreatedAt,
		}
	}
	return out, nil
}

func (s *assistantService) Chat(ctx context.Context, id uuid.UUID, req *dto.ChatRequest) (*dto.ChatAcceptedResponse, error) {
	if _, ok := s.sessions.Get(id.String()); !ok {
		// Rehydrate from the durable record after a store eviction.
		record, err := s.findSession(ctx, id)
		if err != nil {
			return nil, err
		}
		s.sessions.Save(&store.Session{
			ID:       id.String(),
			State:    record.State,
			Document: record.Document,
			Facts:    record.Facts,
		})
	}

	if err := s.transcripts.PublishTurn(dto.TranscriptMessage{
		SessionId: id,
		Role:      "user",
		Chat:      req.Message,
	}); err != nil {
		s.logger.Warn("Assistant", "Failed to queue user turn", map[string]interface{}{
			"session_id": id, "error": err.Error(),
		})
	}

	if err := s.orch.Submit(ctx, id.String(), req.Message); err != nil {
		return nil, err
	}

	return &dto.ChatAcceptedResponse{SessionId: id, Accepted: true}, nil
}

// findSession loads the durable record or reports 404.
func (s *assistantService) findSession(ctx context.Context, id uuid.UUID) (*entity.ResumeSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.ResumeSessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, serverutils.NewAppError(fiber.StatusNotFound, "session not found")
	}
	return record, nil
}

func sessionResponse(record *entity.ResumeSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:       record.Id,
		Title:    record.Title,
		State:    record.State,
		Document: record.Document,
		Facts:    record.Facts,
		Created:  record.CreatedAt,
	}
}
