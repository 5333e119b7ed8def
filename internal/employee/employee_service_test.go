package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/employee"
	employeeerrors "github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/employee/errors"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/events"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	createFn        func(ctx context.Context, e *employee.Employee) error
	findActiveFn    func(ctx context.Context) ([]employee.Employee, error)
	findActiveCalls int
}

func (f *fakeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, e *employee.Employee) error {
	return f.createFn(ctx, e)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) { return nil, nil }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return nil, nil
}
func (f *fakeRepo) FindByFullName(ctx context.Context, fullName string) (*employee.Employee, error) {
	return nil, nil
}
func (f *fakeRepo) FindActive(ctx context.Context) ([]employee.Employee, error) {
	f.findActiveCalls++
	return f.findActiveFn(ctx)
}
func (f *fakeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }
func (f *fakeRepo) Delete(ctx context.Context, id string) error            { return nil }

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	return f.next, nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	redismock redismock.ClientMock
	repo      *fakeRepo
	counter   *fakeCounter
	outbox    *fakeOutbox
	service   employee.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()
	repo := &fakeRepo{}
	counterRepo := &fakeCounter{next: 7}
	outboxRepo := &fakeOutbox{}

	svc := employee.NewServiceWithOutbox(db, repo, counterRepo, outboxRepo, rdb)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		redismock: redisMock,
		repo:      repo,
		counter:   counterRepo,
		outbox:    outboxRepo,
		service:   svc,
	}
}

func TestEmployeeService_Create_GeneratesTechnicianNumber(t *testing.T) {
	deps := setupServiceTest(t)

	var persisted *employee.Employee
	deps.repo.createFn = func(ctx context.Context, e *employee.Employee) error {
		persisted = e
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.redismock.ExpectDel(employee.TechnicianOptionsKey).SetVal(1)

	resp, err := deps.service.Create(context.Background(), employee.CreateEmployeeRequest{
		FullName:       "Alice Carter",
		Email:          "alice@autocare.test",
		Specialization: "Brakes",
		HireDate:       "2025-03-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, "TECH-000007", resp.EmployeeNumber)
	assert.Equal(t, employee.EmploymentActive, resp.EmploymentStatus)
	assert.NotNil(t, persisted)

	assert.Len(t, deps.outbox.created, 1)
	assert.Equal(t, "employee_created", deps.outbox.created[0].EventType)
	assert.Equal(t, events.EmployeeCreatedTopic, deps.outbox.created[0].Topic)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	assert.NoError(t, deps.redismock.ExpectationsWereMet())
}

func TestEmployeeService_Create_DuplicateEmail(t *testing.T) {
	deps := setupServiceTest(t)

	deps.repo.createFn = func(ctx context.Context, e *employee.Employee) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()

	_, err := deps.service.Create(context.Background(), employee.CreateEmployeeRequest{
		FullName: "Alice Carter",
		Email:    "alice@autocare.test",
		HireDate: "2025-03-01",
	})

	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestEmployeeService_GetOptions_CacheHit(t *testing.T) {
	deps := setupServiceTest(t)

	cached := []employee.EmployeeResponse{
		{ID: uuid.New().String(), FullName: "Alice Carter", EmployeeNumber: "TECH-000001"},
	}
	payload, err := json.Marshal(cached)
	assert.NoError(t, err)

	deps.redismock.ExpectGet(employee.TechnicianOptionsKey).SetVal(string(payload))

	resp, err := deps.service.GetOptions(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, cached, resp)
	assert.Zero(t, deps.repo.findActiveCalls)
	assert.NoError(t, deps.redismock.ExpectationsWereMet())
}

func TestEmployeeService_GetOptions_CacheMissFillsCache(t *testing.T) {
	deps := setupServiceTest(t)

	hired := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	row := employee.Employee{
		ID:               uuid.New(),
		FullName:         "Bob Diaz",
		Email:            "bob@autocare.test",
		EmployeeNumber:   "TECH-000002",
		Specialization:   "Diagnostics",
		EmploymentStatus: employee.EmploymentActive,
		HireDate:         hired,
	}
	deps.repo.findActiveFn = func(ctx context.Context) ([]employee.Employee, error) {
		return []employee.Employee{row}, nil
	}

	expected := []employee.EmployeeResponse{{
		ID:               row.ID.String(),
		FullName:         row.FullName,
		Email:            row.Email,
		EmployeeNumber:   row.EmployeeNumber,
		Specialization:   row.Specialization,
		EmploymentStatus: row.EmploymentStatus,
		HireDate:         "2024-01-05",
	}}
	expectedPayload, err := json.Marshal(expected)
	assert.NoError(t, err)

	deps.redismock.ExpectGet(employee.TechnicianOptionsKey).RedisNil()
	deps.redismock.ExpectSet(employee.TechnicianOptionsKey, expectedPayload, 1*time.Hour).SetVal("OK")

	resp, err := deps.service.GetOptions(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, resp)
	assert.Equal(t, 1, deps.repo.findActiveCalls)
	assert.NoError(t, deps.redismock.ExpectationsWereMet())
}

func TestEmployeeService_GetOptions_RepositoryError(t *testing.T) {
	deps := setupServiceTest(t)

	deps.repo.findActiveFn = func(ctx context.Context) ([]employee.Employee, error) {
		return nil, errors.New("database connection lost")
	}

	deps.redismock.ExpectGet(employee.TechnicianOptionsKey).RedisNil()

	_, err := deps.service.GetOptions(context.Background())
	assert.Error(t, err)
}
