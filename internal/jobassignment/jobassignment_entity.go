package jobassignment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusAssigned   = "ASSIGNED"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

type JobAssignment struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string         `gorm:"column:title;type:varchar(160);not null"`
	Description string         `gorm:"column:description;type:text"`
	EmployeeID  uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;index"`
	Status      string         `gorm:"column:status;type:varchar(20);not null;default:ASSIGNED"`
	DueDate     *time.Time     `gorm:"column:due_date;type:date"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (JobAssignment) TableName() string {
	return "job_assignments"
}

// EmployeeRef is the read-only slice of the employee row joined into
// assignment listings.
type EmployeeRef struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
	Email    string    `gorm:"column:email"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusAssigned, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// Assignments walk forward only; DONE is terminal. Re-asserting the current
// status is a no-op, matching the appointment lifecycle.
func isAllowedStatusTransition(current, target string) bool {
	if current == target {
		return true
	}
	switch current {
	case StatusAssigned:
		return target == StatusInProgress || target == StatusDone
	case StatusInProgress:
		return target == StatusDone
	default:
		return false
	}
}
