package timetracking

import (
	"context"
	"database/sql"
	"time"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timelog_repo.go -destination=mock/timelog_repo_mock.go -package=mock
type TimeLogRepository interface {
	WithTx(tx *sql.Tx) TimeLogRepository
	Create(ctx context.Context, l *TimeLog) error
	FindByID(ctx context.Context, id string) (*TimeLog, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]TimeLog, error)
	FindAllByAppointment(ctx context.Context, appointmentID string) ([]TimeLog, error)
	Update(ctx context.Context, l *TimeLog) error
	Delete(ctx context.Context, id string) error
	SumHoursByAppointment(ctx context.Context, appointmentID string) (float64, error)
	SumHoursByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) (float64, error)
}

type timeLogRepository struct {
	db *gorm.DB
}

func NewTimeLogRepository(db *gorm.DB) TimeLogRepository {
	return &timeLogRepository{db: db}
}

func (r *timeLogRepository) WithTx(tx *sql.Tx) TimeLogRepository {
	return &timeLogRepository{db: connection.UseTx(r.db, tx)}
}

func (r *timeLogRepository) Create(ctx context.Context, l *TimeLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *timeLogRepository) FindByID(ctx context.Context, id string) (*TimeLog, error) {
	var l TimeLog
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&l).Error
	return &l, err
}

func (r *timeLogRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]TimeLog, error) {
	var rows []TimeLog
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *timeLogRepository) FindAllByAppointment(ctx context.Context, appointmentID string) ([]TimeLog, error) {
	var rows []TimeLog
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("date ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *timeLogRepository) Update(ctx context.Context, l *TimeLog) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *timeLogRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&TimeLog{}).Error
}

// SumHoursByAppointment totals every employee's logs for the appointment.
func (r *timeLogRepository) SumHoursByAppointment(ctx context.Context, appointmentID string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&TimeLog{}).
		Where("appointment_id = ?", appointmentID).
		Select("COALESCE(SUM(hours), 0)").
		Scan(&total).Error
	return total, err
}

func (r *timeLogRepository) SumHoursByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&TimeLog{}).
		Where("employee_id = ?", employeeID).
		Where("date >= ? AND date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Select("COALESCE(SUM(hours), 0)").
		Scan(&total).Error
	return total, err
}
