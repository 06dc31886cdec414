package entity

import (
	"time"

	"ai-resume-be/pkg/facts"

	"github.com/google/uuid"
)

// ResumeSession is the durable record of one conversation: the gathered
// facts plus the last committed document. The live orchestration state is
// kept in the session store, not here.
type ResumeSession struct {
	Id        uuid.UUID
	Title     string
	State     string
	Document  string
	Facts     facts.Resume
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
