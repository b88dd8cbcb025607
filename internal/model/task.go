// Package model holds the persisted domain types.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Task is a stored task submission. Fields have passed validation.FieldValidator.
type Task struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Email       string    `db:"email" json:"email"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
