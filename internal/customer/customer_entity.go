package customer

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName  string         `gorm:"column:full_name;type:varchar(120);not null"`
	Email     string         `gorm:"column:email;type:varchar(120);not null;uniqueIndex:uq_customer_email"`
	Phone     string         `gorm:"column:phone;type:varchar(30)"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Customer) TableName() string {
	return "customers"
}
