package jobassignment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/employee"
	jobassignmenterrors "github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/jobassignment/errors"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeDirectory confirms the assignee exists before work is handed out.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

//go:generate mockgen -source=jobassignment_service.go -destination=mock/jobassignment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)
	GetAll(ctx context.Context) ([]AssignmentResponse, error)
	GetByID(ctx context.Context, id string) (AssignmentResponse, error)
	Update(ctx context.Context, id string, req UpdateAssignmentRequest) (AssignmentResponse, error)
	Delete(ctx context.Context, id string) error
	ListByEmployee(ctx context.Context, employeeID string) ([]AssignmentResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeDirectory
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees EmployeeDirectory, logger ...*zap.Logger) Service {
	l := zap.L().Named("jobassignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("jobassignment.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create assignment requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
	)

	empID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AssignmentResponse{}, jobassignmenterrors.ErrInvalidEmployeeID
	}
	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		d, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return AssignmentResponse{}, jobassignmenterrors.ErrInvalidDateFormat
		}
		dueDate = &d
	}

	if _, err := s.employees.FindByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, jobassignmenterrors.ErrEmployeeNotFound
		}
		s.logger.Error("create assignment employee lookup failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	j := &JobAssignment{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		EmployeeID:  empID,
		Status:      StatusAssigned,
		DueDate:     dueDate,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create assignment begin tx failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, j); err != nil {
		s.logger.Error("create assignment persist failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create assignment commit failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	s.logger.Info("create assignment success",
		zap.String("request_id", rid),
		zap.String("assignment_id", j.ID.String()),
	)
	return mapToResponse(*j), nil
}

func (s *service) GetAll(ctx context.Context) ([]AssignmentResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AssignmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AssignmentResponse{}, jobassignmenterrors.ErrInvalidAssignmentID
	}
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, jobassignmenterrors.ErrAssignmentNotFound
		}
		return AssignmentResponse{}, err
	}
	return mapToResponse(*j), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAssignmentRequest) (AssignmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update assignment requested",
		zap.String("request_id", rid),
		zap.String("assignment_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return AssignmentResponse{}, jobassignmenterrors.ErrInvalidAssignmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update assignment begin tx failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	j, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, jobassignmenterrors.ErrAssignmentNotFound
		}
		s.logger.Error("update assignment fetch existing failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	// Partial-update semantics: only provided fields change.
	if req.Title != nil {
		j.Title = *req.Title
	}
	if req.Description != nil {
		j.Description = *req.Description
	}
	if req.EmployeeID != nil {
		empID, err := uuid.Parse(*req.EmployeeID)
		if err != nil {
			return AssignmentResponse{}, jobassignmenterrors.ErrInvalidEmployeeID
		}
		if _, err := s.employees.FindByID(ctx, *req.EmployeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return AssignmentResponse{}, jobassignmenterrors.ErrEmployeeNotFound
			}
			s.logger.Error("update assignment employee lookup failed", zap.Error(err))
			return AssignmentResponse{}, err
		}
		j.EmployeeID = empID
		j.Employee = nil
	}
	if req.Status != nil {
		if !IsValidStatus(*req.Status) {
			return AssignmentResponse{}, jobassignmenterrors.ErrInvalidStatus
		}
		if !isAllowedStatusTransition(j.Status, *req.Status) {
			s.logger.Warn("update assignment invalid status transition",
				zap.String("assignment_id", id),
				zap.String("from_status", j.Status),
				zap.String("to_status", *req.Status),
			)
			return AssignmentResponse{}, jobassignmenterrors.ErrInvalidStatusTransition
		}
		j.Status = *req.Status
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			j.DueDate = nil
		} else {
			d, err := time.Parse("2006-01-02", *req.DueDate)
			if err != nil {
				return AssignmentResponse{}, jobassignmenterrors.ErrInvalidDateFormat
			}
			j.DueDate = &d
		}
	}

	if err := qtx.Update(ctx, j); err != nil {
		s.logger.Error("update assignment persist failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update assignment commit failed", zap.Error(err))
		return AssignmentResponse{}, err
	}

	s.logger.Info("update assignment success",
		zap.String("request_id", rid),
		zap.String("assignment_id", id),
		zap.String("status", j.Status),
	)
	return mapToResponse(*j), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return jobassignmenterrors.ErrInvalidAssignmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		s.logger.Error("delete assignment failed", zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete assignment success", zap.String("assignment_id", id))
	return nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string) ([]AssignmentResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, jobassignmenterrors.ErrInvalidEmployeeID
	}
	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func mapToResponse(j JobAssignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:          j.ID.String(),
		Title:       j.Title,
		Description: j.Description,
		EmployeeID:  j.EmployeeID.String(),
		Status:      j.Status,
	}
	if j.Employee != nil {
		resp.EmployeeName = j.Employee.FullName
	}
	if j.DueDate != nil {
		d := j.DueDate.Format("2006-01-02")
		resp.DueDate = &d
	}
	if !j.CreatedAt.IsZero() {
		resp.CreatedAt = j.CreatedAt.Format(time.RFC3339)
	}
	if !j.UpdatedAt.IsZero() {
		resp.UpdatedAt = j.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(rows []JobAssignment) []AssignmentResponse {
	resp := make([]AssignmentResponse, 0, len(rows))
	for _, j := range rows {
		resp = append(resp, mapToResponse(j))
	}
	return resp
}
