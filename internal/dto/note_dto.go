package dto

import (
	"time"

	"github.com/google/uuid"
)

// Form modes accepted by POST /notes/:noteId.
const (
	ModeUpdateNote = "UPDATE_NOTE"
	ModeDeleteNote = "DELETE_NOTE"
)

type CreateNoteRequest struct {
	Title string `form:"title"`
	Body  string `form:"body"`
}

type NoteActionRequest struct {
	Mode  string `form:"mode"`
	Title string `form:"title"`
	Body  string `form:"body"`
}

type NoteResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NoteSummary struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
}

type PreviewResponse struct {
	Authenticated bool         `json:"authenticated"`
	Note          NoteResponse `json:"note"`
}
