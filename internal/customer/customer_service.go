package customer

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	customererrors "github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/customer/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=customer_service.go -destination=mock/customer_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (CustomerResponse, error)
	GetAll(ctx context.Context) ([]CustomerResponse, error)
	GetByID(ctx context.Context, id string) (CustomerResponse, error)
	Update(ctx context.Context, id string, req UpdateCustomerRequest) (CustomerResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("customer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("customer.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateCustomerRequest) (CustomerResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create customer begin tx failed", zap.Error(err))
		return CustomerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	c := &Customer{
		ID:       uuid.New(),
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if err := qtx.Create(ctx, c); err != nil {
		s.logger.Error("create customer persist failed", zap.Error(err))
		return CustomerResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create customer commit failed", zap.Error(err))
		return CustomerResponse{}, err
	}

	s.logger.Info("create customer success", zap.String("customer_id", c.ID.String()))
	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context) ([]CustomerResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	res := make([]CustomerResponse, len(rows))
	for i, c := range rows {
		res[i] = mapToResponse(c)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CustomerResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return CustomerResponse{}, customererrors.ErrInvalidCustomerID
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CustomerResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCustomerRequest) (CustomerResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update customer begin tx failed", zap.Error(err))
		return CustomerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	c, err := qtx.FindByID(ctx, id)
	if err != nil {
		return CustomerResponse{}, mapRepositoryError(err)
	}

	c.FullName = req.FullName
	c.Email = req.Email
	c.Phone = req.Phone

	if err := qtx.Update(ctx, c); err != nil {
		s.logger.Error("update customer persist failed", zap.Error(err))
		return CustomerResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return CustomerResponse{}, err
	}

	s.logger.Info("update customer success", zap.String("customer_id", id))
	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete customer failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete customer success", zap.String("customer_id", id))
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return customererrors.ErrCustomerNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_customer_email" {
			return customererrors.ErrCustomerAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_customer_email") {
		return customererrors.ErrCustomerAlreadyExists
	}

	return err
}

func mapToResponse(c Customer) CustomerResponse {
	return CustomerResponse{
		ID:       c.ID.String(),
		FullName: c.FullName,
		Email:    c.Email,
		Phone:    c.Phone,
	}
}
