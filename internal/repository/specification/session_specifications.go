package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByResumeSessionID filters chat messages by their session.
type ByResumeSessionID struct {
	ResumeSessionID uuid.UUID
}

func (s ByResumeSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("resume_session_id = ?", s.ResumeSessionID)
}

// ByState filters sessions by orchestration state.
type ByState struct {
	State string
}

func (s ByState) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("state = ?", s.State)
}
