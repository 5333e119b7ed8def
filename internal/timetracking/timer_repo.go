package timetracking

import (
	"context"
	"database/sql"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timer_repo.go -destination=mock/timer_repo_mock.go -package=mock
type TimerRepository interface {
	WithTx(tx *sql.Tx) TimerRepository
	Create(ctx context.Context, t *Timer) error
	FindByID(ctx context.Context, id string) (*Timer, error)
	FindActiveByEmployee(ctx context.Context, employeeID string) (*Timer, error)
	Update(ctx context.Context, t *Timer) error
}

type timerRepository struct {
	db *gorm.DB
}

func NewTimerRepository(db *gorm.DB) TimerRepository {
	return &timerRepository{db: db}
}

func (r *timerRepository) WithTx(tx *sql.Tx) TimerRepository {
	return &timerRepository{db: connection.UseTx(r.db, tx)}
}

func (r *timerRepository) Create(ctx context.Context, t *Timer) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *timerRepository) FindByID(ctx context.Context, id string) (*Timer, error) {
	var t Timer
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&t).Error
	return &t, err
}

func (r *timerRepository) FindActiveByEmployee(ctx context.Context, employeeID string) (*Timer, error) {
	var t Timer
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("active = ?", true).
		First(&t).Error
	return &t, err
}

func (r *timerRepository) Update(ctx context.Context, t *Timer) error {
	return r.db.WithContext(ctx).Save(t).Error
}
