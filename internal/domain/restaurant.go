// Package domain contains the core data types for the Lucky API.
// This package has no database or HTTP dependencies and is imported by every
// other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is a single row of the restaurants table.
// Rows are created by the seed command; the API only reads them.
type Restaurant struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
