package customer_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/customer"
	customererrors "github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/customer/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn   func(ctx context.Context, c *customer.Customer) error
	findByIDFn func(ctx context.Context, id string) (*customer.Customer, error)
	updateFn   func(ctx context.Context, c *customer.Customer) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) customer.Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, c *customer.Customer) error {
	return f.createFn(ctx, c)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]customer.Customer, error) { return nil, nil }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRepo) Update(ctx context.Context, c *customer.Customer) error {
	return f.updateFn(ctx, c)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return nil }

func newServiceWithMock(t *testing.T, repo *fakeRepo) (customer.Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return customer.NewService(db, repo), mock
}

func TestCustomerService_Create(t *testing.T) {
	var persisted *customer.Customer
	repo := &fakeRepo{
		createFn: func(ctx context.Context, c *customer.Customer) error {
			persisted = c
			return nil
		},
	}
	svc, mock := newServiceWithMock(t, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), customer.CreateCustomerRequest{
		FullName: "Dana Reyes",
		Email:    "dana@autocare.test",
		Phone:    "555-0101",
	})

	assert.NoError(t, err)
	assert.NotNil(t, persisted)
	assert.Equal(t, persisted.ID.String(), resp.ID)
	assert.Equal(t, "Dana Reyes", resp.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerService_Create_DuplicateEmail(t *testing.T) {
	repo := &fakeRepo{
		createFn: func(ctx context.Context, c *customer.Customer) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_customer_email"}
		},
	}
	svc, mock := newServiceWithMock(t, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), customer.CreateCustomerRequest{
		FullName: "Dana Reyes",
		Email:    "dana@autocare.test",
	})

	assert.ErrorIs(t, err, customererrors.ErrCustomerAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerService_GetByID(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, gotID string) (*customer.Customer, error) {
			assert.Equal(t, id.String(), gotID)
			return &customer.Customer{ID: id, FullName: "Dana Reyes"}, nil
		},
	}
	svc, _ := newServiceWithMock(t, repo)

	resp, err := svc.GetByID(context.Background(), id.String())
	assert.NoError(t, err)
	assert.Equal(t, "Dana Reyes", resp.FullName)

	_, err = svc.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, customererrors.ErrInvalidCustomerID)
}

func TestCustomerService_GetByID_NotFound(t *testing.T) {
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*customer.Customer, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc, _ := newServiceWithMock(t, repo)

	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, customererrors.ErrCustomerNotFound)
}
