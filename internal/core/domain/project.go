package domain

import "time"

// Project groups tasks under a name with an optional schedule window.
type Project struct {
	ID          int64     `bson:"id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description,omitempty"`
	StartDate   time.Time `bson:"start_date,omitempty"`
	EndDate     time.Time `bson:"end_date,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
	CreatedBy   string    `bson:"created_by,omitempty"`
	UpdatedBy   string    `bson:"updated_by,omitempty"`
}

// ValidSchedule reports whether the end date is strictly after the start
// date. Either side being unset leaves the window unconstrained.
func (p *Project) ValidSchedule() bool {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return true
	}
	return p.EndDate.After(p.StartDate)
}
