package service

import (
	"context"
	"encoding/json"
	"time"

	"rockspec-notes/internal/dto"
	"rockspec-notes/internal/entity"
	"rockspec-notes/internal/pkg/apperr"
	"rockspec-notes/internal/pkg/logger"
	"rockspec-notes/internal/repository/memory"
	"rockspec-notes/internal/repository/specification"
	"rockspec-notes/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, ownerId uuid.UUID, title, body string) (*entity.Note, error)
	Show(ctx context.Context, ownerId, id uuid.UUID) (*entity.Note, error)
	ShowPublic(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	Update(ctx context.Context, ownerId, id uuid.UUID, title, body string) (*entity.Note, error)
	Delete(ctx context.Context, ownerId, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerId uuid.UUID) ([]*dto.NoteSummary, error)
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	previews         *memory.PreviewCache
	log              logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	previews *memory.PreviewCache,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		previews:         previews,
		log:              log,
	}
}

// validateFields keeps the observable form behavior: title is checked
// before body and the first invalid field wins.
func validateFields(title, body string) error {
	if title == "" {
		return apperr.NewValidation("title", "Title is required")
	}
	if body == "" {
		return apperr.NewValidation("body", "Body is required")
	}
	return nil
}

// publishEvent emits a note lifecycle event. Events feed the activity log
// only, so a publish failure is logged and never fails the request.
func (s *noteService) publishEvent(ctx context.Context, eventType string, noteId, ownerId uuid.UUID) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.NoteEventMessage{
		Type:       eventType,
		NoteId:     noteId,
		OwnerId:    ownerId,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("note", "failed to publish note event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func (s *noteService) Create(ctx context.Context, ownerId uuid.UUID, title, body string) (*entity.Note, error) {
	if err := validateFields(title, body); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	note := &entity.Note{
		Id:        uuid.New(),
		Title:     title,
		Body:      body,
		OwnerId:   ownerId,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, dto.EventNoteCreated, note.Id, ownerId)

	return note, nil
}

// Show looks a note up by (id, owner) jointly. A note that exists under a
// different owner resolves to the same NotFound as one that never existed.
func (s *noteService) Show(ctx context.Context, ownerId, id uuid.UUID) (*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperr.ErrNotFound
	}
	return note, nil
}

// ShowPublic serves the preview path: any valid note id reads the note,
// regardless of caller identity. Results sit in a short TTL cache since
// this path is identity-free and read-heavy.
func (s *noteService) ShowPublic(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	if note, ok := s.previews.Get(id); ok {
		return note, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperr.ErrNotFound
	}

	s.previews.Set(note)
	return note, nil
}

func (s *noteService) Update(ctx context.Context, ownerId, id uuid.UUID, title, body string) (*entity.Note, error) {
	if err := validateFields(title, body); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	note := &entity.Note{
		Id:        id,
		OwnerId:   ownerId,
		Title:     title,
		Body:      body,
		UpdatedAt: time.Now(),
	}

	// The store filters by (id, owner_id), so an ownership mismatch shows
	// up as zero affected rows, same as a missing note.
	affected, err := uow.NoteRepository().UpdateOwned(ctx, note)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperr.ErrNotFound
	}

	s.previews.Invalidate(id)
	s.publishEvent(ctx, dto.EventNoteUpdated, id, ownerId)

	return uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{OwnerID: ownerId},
	)
}

func (s *noteService) Delete(ctx context.Context, ownerId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	affected, err := uow.NoteRepository().DeleteOwned(ctx, id, ownerId)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}

	s.previews.Invalidate(id)
	s.publishEvent(ctx, dto.EventNoteDeleted, id, ownerId)

	return nil
}

func (s *noteService) ListByOwner(ctx context.Context, ownerId uuid.UUID) ([]*dto.NoteSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.OwnedBy{OwnerID: ownerId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	summaries := make([]*dto.NoteSummary, len(notes))
	for i, n := range notes {
		summaries[i] = &dto.NoteSummary{
			Id:    n.Id,
			Title: n.Title,
			Body:  n.Body,
		}
	}
	return summaries, nil
}
