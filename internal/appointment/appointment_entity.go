package appointment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending    = "PENDING"
	StatusConfirmed  = "CONFIRMED"
	StatusInProgress = "IN_PROGRESS"
	StatusApproved   = "APPROVED"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// ActiveStatuses is the set counted as open work for capacity purposes.
var ActiveStatuses = []string{StatusPending, StatusConfirmed, StatusInProgress}

type Appointment struct {
	ID                  uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID          uuid.UUID      `gorm:"column:customer_id;type:uuid;not null;index"`
	ServiceType         string         `gorm:"column:service_type;type:varchar(120);not null"`
	Vehicle             string         `gorm:"column:vehicle;type:varchar(120);not null"`
	Date                time.Time      `gorm:"column:date;type:date;not null;index"`
	Time                string         `gorm:"column:time;type:varchar(5);not null"`
	Status              string         `gorm:"column:status;type:varchar(20);not null;default:PENDING"`
	Notes               *string        `gorm:"column:notes;type:text"`
	Progress            int            `gorm:"column:progress;not null;default:0"`
	DueDate             *time.Time     `gorm:"column:due_date;type:date"`
	SpecialInstructions *string        `gorm:"column:special_instructions;type:text"`
	TechnicianID        *uuid.UUID     `gorm:"column:technician_id;type:uuid;index"`
	TechnicianName      string         `gorm:"column:technician_name;type:varchar(120)"`
	EstimatedHours      float64        `gorm:"column:estimated_hours;type:numeric(6,2);not null;default:0"`
	ActualHours         float64        `gorm:"column:actual_hours;type:numeric(6,2);not null;default:0"`
	CreatedAt           time.Time      `gorm:"column:created_at"`
	UpdatedAt           time.Time      `gorm:"column:updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Customer            *CustomerRef   `gorm:"foreignKey:CustomerID;references:ID"`
	Technician          *EmployeeRef   `gorm:"foreignKey:TechnicianID;references:ID"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Assigned reports whether the appointment has any technician reference,
// resolved or name-only.
func (a *Appointment) Assigned() bool {
	return a.TechnicianID != nil || a.TechnicianName != ""
}

// IsValidStatus reports whether s is one of the lifecycle statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusApproved, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// isAllowedStatusTransition encodes the lifecycle. Setting the same status
// again is a no-op and always allowed; COMPLETED and CANCELLED are terminal.
func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus == targetStatus {
		return true
	}

	switch currentStatus {
	case StatusPending:
		return targetStatus == StatusConfirmed || targetStatus == StatusCancelled
	case StatusConfirmed:
		return targetStatus == StatusInProgress || targetStatus == StatusCancelled
	case StatusInProgress:
		return targetStatus == StatusApproved || targetStatus == StatusCompleted || targetStatus == StatusCancelled
	case StatusApproved:
		return targetStatus == StatusCompleted || targetStatus == StatusCancelled
	default:
		return false
	}
}

type CustomerRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (CustomerRef) TableName() string {
	return "customers"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
