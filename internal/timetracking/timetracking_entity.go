package timetracking

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LogStatusCompleted       = "COMPLETED"
	LogStatusInProgress      = "IN_PROGRESS"
	LogStatusPendingApproval = "PENDING_APPROVAL"
)

// MinTimerHours is the smallest sessions worth logging: one minute of work,
// expressed in hours at two decimal places.
const MinTimerHours = 0.02

// Timer is an in-flight work session. The partial unique index on
// (employee_id) WHERE active keeps the one-active-timer rule honest even
// when two start requests race past the application check.
type Timer struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index:uq_timer_active_employee,unique,where:active"`
	AppointmentID uuid.UUID  `gorm:"column:appointment_id;type:uuid;not null;index"`
	StartTime     time.Time  `gorm:"column:start_time;type:timestamptz;not null"`
	EndTime       *time.Time `gorm:"column:end_time;type:timestamptz"`
	Active        bool       `gorm:"column:active;not null;default:true"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (Timer) TableName() string {
	return "timers"
}

type TimeLog struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;index"`
	AppointmentID uuid.UUID      `gorm:"column:appointment_id;type:uuid;not null;index"`
	Date          time.Time      `gorm:"column:date;type:date;not null;index"`
	Hours         float64        `gorm:"column:hours;type:numeric(5,2);not null"`
	Description   string         `gorm:"column:description;type:text;not null"`
	Status        string         `gorm:"column:status;type:varchar(20);not null;default:COMPLETED"`
	Billable      bool           `gorm:"column:billable;not null;default:true"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (TimeLog) TableName() string {
	return "time_logs"
}

func IsValidLogStatus(s string) bool {
	switch s {
	case LogStatusCompleted, LogStatusInProgress, LogStatusPendingApproval:
		return true
	default:
		return false
	}
}
