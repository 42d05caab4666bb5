package dto

import (
	"time"

	"github.com/google/uuid"
)

// Note lifecycle event types published on the in-process bus.
const (
	EventNoteCreated = "note.created"
	EventNoteUpdated = "note.updated"
	EventNoteDeleted = "note.deleted"
)

type NoteEventMessage struct {
	Type       string    `json:"type"`
	NoteId     uuid.UUID `json:"note_id"`
	OwnerId    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
