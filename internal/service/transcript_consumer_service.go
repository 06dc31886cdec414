package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-resume-be/internal/dto"
	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/repository/specification"
	"ai-resume-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type ITranscriptConsumer interface {
	Consume(ctx context.Context) error
}

type transcriptConsumer struct {
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
}

func NewTranscriptConsumer(pubSub *gochannel.GoChannel, uowFactory unitofwork.RepositoryFactory) ITranscriptConsumer {
	return &transcriptConsumer{
		pubSub:     pubSub,
		uowFactory: uowFactory,
	}
}

func (cs *transcriptConsumer) Consume(ctx context.Context) error {
	turns, err := cs.pubSub.Subscribe(ctx, TranscriptTopic)
	if err != nil {
		return err
	}
	snapshots, err := cs.pubSub.Subscribe(ctx, SnapshotTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range turns {
			cs.processTurn(ctx, msg)
		}
	}()
	go func() {
		for msg := range snapshots {
			cs.processSnapshot(ctx, msg)
		}
	}()

	return nil
}

func (cs *transcriptConsumer) processTurn(ctx context.Context, msg *message.Message) {
	var payload dto.TranscriptMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal transcript turn: %v", err)
		msg.Ack() // invalid payloads would retry forever
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	err := uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
		Id:              uuid.New(),
		Chat:            payload.Chat,
		Role:            payload.Role,
		Intent:          payload.Intent,
		ResumeSessionId: payload.SessionId,
	})
	if err != nil {
		log.Printf("[ERROR] Failed to persist transcript turn for session %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}

	msg.Ack()
}

func (cs *transcriptConsumer) processSnapshot(ctx context.Context, msg *message.Message) {
	var payload dto.SessionSnapshotMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal session snapshot: %v", err)
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ResumeSessionRepository().FindOne(ctx, specification.ByID{ID: payload.SessionId})
	if err != nil {
		log.Printf("[ERROR] Failed to load session %s for snapshot: %v", payload.SessionId, err)
		msg.Nack()
		return
	}
	if session == nil {
		// Session row deleted while the snapshot was queued.
		msg.Ack()
		return
	}

	session.State = payload.State
	session.Document = payload.Document
	session.Facts = payload.Facts
	if err := uow.ResumeSessionRepository().Update(ctx, session); err != nil {
		log.Printf("[ERROR] Failed to persist snapshot for session %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
