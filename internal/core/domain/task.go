package domain

import "time"

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusTodo  Status = "TODO"
	StatusDoing Status = "DOING"
	StatusDone  Status = "DONE"
)

// Priority orders tasks by urgency.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Task is a unit of work belonging to a project.
type Task struct {
	ID          int64     `bson:"id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description,omitempty"`
	Status      Status    `bson:"status"`
	Priority    Priority  `bson:"priority"`
	DueDate     time.Time `bson:"due_date,omitempty"`
	ProjectID   int64     `bson:"project_id"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
	CreatedBy   string    `bson:"created_by,omitempty"`
	UpdatedBy   string    `bson:"updated_by,omitempty"`
}

// ValidStatus reports whether s is a known task status.
func ValidStatus(s Status) bool {
	return s == StatusTodo || s == StatusDoing || s == StatusDone
}

// ValidPriority reports whether p is a known task priority.
func ValidPriority(p Priority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
