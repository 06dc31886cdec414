package unitofwork

import (
	"context"

	"ai-resume-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ResumeSessionRepository() contract.ResumeSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
