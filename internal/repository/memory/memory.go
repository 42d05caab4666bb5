// Package memory holds in-memory counterparts of the persistence layer:
// a preview cache used in production and contract-compatible repositories
// used by the service and handler tests.
package memory

import (
	"sort"
	"sync"

	"rockspec-notes/internal/entity"
	"rockspec-notes/internal/repository/specification"

	"github.com/google/uuid"
)

// match interprets the query specifications the repositories use against a
// single note. Ordering specs are handled separately by the callers.
func noteMatches(n *entity.Note, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if n.Id != s.ID {
				return false
			}
		case specification.OwnedBy:
			if n.OwnerId != s.OwnerID {
				return false
			}
		}
	}
	return true
}

func userMatches(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		}
	}
	return true
}

func orderNotes(notes []*entity.Note, specs []specification.Specification) {
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && s.Field == "created_at" {
			sort.SliceStable(notes, func(i, j int) bool {
				if s.Desc {
					return notes[i].CreatedAt.After(notes[j].CreatedAt)
				}
				return notes[i].CreatedAt.Before(notes[j].CreatedAt)
			})
		}
	}
}

// Store is the shared backing state for the in-memory repositories.
type Store struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entity.User
	notes map[uuid.UUID]*entity.Note
}

func NewStore() *Store {
	return &Store{
		users: make(map[uuid.UUID]*entity.User),
		notes: make(map[uuid.UUID]*entity.Note),
	}
}
