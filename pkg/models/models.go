package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type Post struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	Category    string      `json:"category"`
	AuthorName  string      `json:"authorName"`
	AuthorEmail string      `json:"authorEmail"`
	DateTime    time.Time   `json:"dateTime"`
	ImageIDs    []uuid.UUID `json:"imagesIds,omitempty"`
	Comments    []Comment   `json:"comments,omitempty"`
}

// Comment carries its owning post ID. Some backend responses omit the comment
// ID; such comments are rendered read-only instead of being addressed by a
// surrogate key.
type Comment struct {
	ID          uuid.UUID `json:"id"`
	PostID      uuid.UUID `json:"postId,omitempty"`
	Content     string    `json:"content"`
	AuthorName  string    `json:"authorName"`
	AuthorEmail string    `json:"authorEmail"`
	DateTime    time.Time `json:"dateTime"`
}

// Identity is the signed-in user as the backend reports it at login.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
