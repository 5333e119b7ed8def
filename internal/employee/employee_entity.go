package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EmploymentActive   = "ACTIVE"
	EmploymentInactive = "INACTIVE"
)

// Employee carries the employment status only. Workload status
// (AVAILABLE/BUSY/OVERLOADED) is derived on demand by the workload package
// and is never persisted here.
type Employee struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName         string         `gorm:"column:full_name;type:varchar(120);not null;index"`
	Email            string         `gorm:"column:email;type:varchar(120);not null;uniqueIndex:uq_employee_email"`
	EmployeeNumber   string         `gorm:"column:employee_number;type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	Specialization   string         `gorm:"column:specialization;type:varchar(120)"`
	EmploymentStatus string         `gorm:"column:employment_status;type:varchar(20);not null;default:ACTIVE"`
	HireDate         time.Time      `gorm:"column:hire_date;type:date;not null"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}
