package service

import (
	"encoding/json"

	"ai-resume-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	TranscriptTopic = "PERSIST_TRANSCRIPT"
	SnapshotTopic   = "PERSIST_SNAPSHOT"
)

// ITranscriptPublisher queues conversation turns and session snapshots for
// asynchronous persistence, keeping the hot path off the database.
type ITranscriptPublisher interface {
	PublishTurn(msg dto.TranscriptMessage) error
	PublishSnapshot(msg dto.SessionSnapshotMessage) error
}

type transcriptPublisher struct {
	pubSub *gochannel.GoChannel
}

func NewTranscriptPublisher(pubSub *gochannel.GoChannel) ITranscriptPublisher {
	return &transcriptPublisher{pubSub: pubSub}
}

func (p *transcriptPublisher) PublishTurn(msg dto.TranscriptMessage) error {
	return p.publish(TranscriptTopic, msg)
}

func (p *transcriptPublisher) PublishSnapshot(msg dto.SessionSnapshotMessage) error {
	return p.publish(SnapshotTopic, msg)
}

func (p *transcriptPublisher) publish(topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.pubSub.Publish(topic, message.NewMessage(watermill.NewUUID(), data))
}
