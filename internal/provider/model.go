package provider

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public face of a cleaning provider shown to customers when
// choosing who takes a job.
type Profile struct {
	ID           uuid.UUID
	Name         string
	RatingAvg    float64
	RatingCount  int
	Verified     bool
	Skills       []string
	ServiceAreas []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
