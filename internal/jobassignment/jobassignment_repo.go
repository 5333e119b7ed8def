package jobassignment

import (
	"context"
	"database/sql"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=jobassignment_repo.go -destination=mock/jobassignment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, j *JobAssignment) error
	FindByID(ctx context.Context, id string) (*JobAssignment, error)
	FindAll(ctx context.Context) ([]JobAssignment, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]JobAssignment, error)
	Update(ctx context.Context, j *JobAssignment) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.UseTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, j *JobAssignment) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*JobAssignment, error) {
	var j JobAssignment
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("id = ?", id).
		First(&j).Error
	return &j, err
}

func (r *repository) FindAll(ctx context.Context) ([]JobAssignment, error) {
	var rows []JobAssignment
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]JobAssignment, error) {
	var rows []JobAssignment
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("due_date ASC NULLS LAST, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, j *JobAssignment) error {
	return r.db.WithContext(ctx).Save(j).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&JobAssignment{}).Error
}
