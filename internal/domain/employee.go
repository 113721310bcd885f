package domain

import (
	"time"

	"github.com/google/uuid"
)

// Employee is an enrolled identity.
type Employee struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Department string    `json:"department,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Active     bool      `json:"is_active"`
	EnrolledAt time.Time `json:"enrolled_at"`
	FaceCount  int       `json:"face_count"`
}

// FaceEmbedding is one stored embedding for an employee, tagged with the
// enrolled pose it was captured under.
type FaceEmbedding struct {
	ID           uuid.UUID  `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	Pose         PoseTarget `json:"pose"`
	Embedding    []float64  `json:"-"`
	QualityScore float64    `json:"quality_score"`
	CreatedAt    time.Time  `json:"created_at"`
}
