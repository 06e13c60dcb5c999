package entities

import (
	"time"

	"github.com/google/uuid"
)

// Student represents an allow-list entry: a pre-registered student
// identifier that is consumed exactly once by account registration.
type Student struct {
	ID         uuid.UUID `json:"id"`
	StudentID  string    `json:"student_id"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	Major      string    `json:"major"`
	ClassName  string    `json:"class_name"`
	IsUsed     bool      `json:"is_used"`
	CreatedAt  time.Time `json:"created_at"`
}

// StudentImportInput is one candidate entry in a batch import
type StudentImportInput struct {
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Major      string `json:"major"`
	ClassName  string `json:"class_name"`
}

// StudentImportResult aggregates the per-entry outcome counts of a batch import
type StudentImportResult struct {
	ImportedCount  int `json:"imported_count"`
	DuplicateCount int `json:"duplicate_count"`
	ErrorCount     int `json:"error_count"`
}

// StudentStats holds allow-list usage counters
type StudentStats struct {
	Total     int64 `json:"total"`
	UsedCount int64 `json:"used_count"`
	Available int64 `json:"available_count"`
}
