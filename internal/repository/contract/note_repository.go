package contract

import (
	"context"

	"rockspec-notes/internal/entity"
	"rockspec-notes/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateOwned and DeleteOwned filter by (id, owner_id) jointly and report
	// how many rows matched. A zero count means missing or not owned; the
	// store never mutates a note on behalf of a non-owner.
	UpdateOwned(ctx context.Context, note *entity.Note) (int64, error)
	DeleteOwned(ctx context.Context, id, ownerId uuid.UUID) (int64, error)
}
