package appointment

import (
	"context"
	"database/sql"
	"time"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=appointment_repo.go -destination=mock/appointment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Appointment) error
	FindByID(ctx context.Context, id string) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]Appointment, error)
	FindAllByCustomer(ctx context.Context, customerID string) ([]Appointment, error)
	FindByEmployeeAndStatuses(ctx context.Context, employeeID string, statuses []string) ([]Appointment, error)
	FindActiveByDate(ctx context.Context, date time.Time) ([]Appointment, error)
	FindActiveByDateAndTechnician(ctx context.Context, date time.Time, technicianName string) ([]Appointment, error)
	UpdateActualHours(ctx context.Context, id string, hours float64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements run on the caller's
// transaction, so appointment writes commit or roll back with it.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.UseTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, a *Appointment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Appointment, error) {
	var a Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Technician").
		Where("id = ?", id).
		First(&a).Error
	return &a, err
}

func (r *repository) Update(ctx context.Context, a *Appointment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Delete removes by id without an existence check; deleting a missing id is
// a storage-level no-op.
func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Appointment{}).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Appointment, error) {
	var rows []Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Order("date DESC, time DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByCustomer(ctx context.Context, customerID string) ([]Appointment, error) {
	var rows []Appointment
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date DESC, time DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployeeAndStatuses(ctx context.Context, employeeID string, statuses []string) ([]Appointment, error) {
	var rows []Appointment
	err := r.db.WithContext(ctx).
		Where("technician_id = ?", employeeID).
		Where("status IN ?", statuses).
		Order("date ASC, time ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindActiveByDate(ctx context.Context, date time.Time) ([]Appointment, error) {
	var rows []Appointment
	err := r.db.WithContext(ctx).
		Where("date = ?", date.Format("2006-01-02")).
		Where("status <> ?", StatusCancelled).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindActiveByDateAndTechnician(ctx context.Context, date time.Time, technicianName string) ([]Appointment, error) {
	var rows []Appointment
	err := r.db.WithContext(ctx).
		Where("date = ?", date.Format("2006-01-02")).
		Where("technician_name = ?", technicianName).
		Where("status <> ?", StatusCancelled).
		Find(&rows).Error
	return rows, err
}

// UpdateActualHours overwrites the derived actual_hours column; the time
// tracking engine calls it after every time-log mutation.
func (r *repository) UpdateActualHours(ctx context.Context, id string, hours float64) error {
	return r.db.WithContext(ctx).
		Model(&Appointment{}).
		Where("id = ?", id).
		Update("actual_hours", hours).Error
}
