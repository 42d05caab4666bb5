package memory

import (
	"context"

	"rockspec-notes/internal/entity"
	"rockspec-notes/internal/repository/contract"
	"rockspec-notes/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository struct {
	store *Store
}

func NewNoteRepository(store *Store) contract.NoteRepository {
	return &NoteRepository{store: store}
}

func (r *NoteRepository) Create(ctx context.Context, note *entity.Note) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	n := *note
	r.store.notes[n.Id] = &n
	return nil
}

func (r *NoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, n := range r.store.notes {
		if noteMatches(n, specs) {
			found := *n
			return &found, nil
		}
	}
	return nil, nil
}

func (r *NoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var notes []*entity.Note
	for _, n := range r.store.notes {
		if noteMatches(n, specs) {
			found := *n
			notes = append(notes, &found)
		}
	}
	orderNotes(notes, specs)
	return notes, nil
}

func (r *NoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var count int64
	for _, n := range r.store.notes {
		if noteMatches(n, specs) {
			count++
		}
	}
	return count, nil
}

func (r *NoteRepository) UpdateOwned(ctx context.Context, note *entity.Note) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.notes[note.Id]
	if !ok || existing.OwnerId != note.OwnerId {
		return 0, nil
	}
	existing.Title = note.Title
	existing.Body = note.Body
	existing.UpdatedAt = note.UpdatedAt
	return 1, nil
}

func (r *NoteRepository) DeleteOwned(ctx context.Context, id, ownerId uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.notes[id]
	if !ok || existing.OwnerId != ownerId {
		return 0, nil
	}
	delete(r.store.notes, id)
	return 1, nil
}
