package contract

import (
	"context"

	"ai-resume-be/internal/entity"
	"ai-resume-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ResumeSessionRepository interface {
	Create(ctx context.Context, session *entity.ResumeSession) error
	Update(ctx context.Context, session *entity.ResumeSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResumeSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResumeSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
