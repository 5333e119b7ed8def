package jobassignment

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/employee"
	jobassignmenterrors "github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/jobassignment/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	rows map[string]*JobAssignment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[string]*JobAssignment)}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, j *JobAssignment) error {
	cp := *j
	f.rows[j.ID.String()] = &cp
	return nil
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*JobAssignment, error) {
	j, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *j
	return &cp, nil
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]JobAssignment, error) {
	var rows []JobAssignment
	for _, j := range f.rows {
		rows = append(rows, *j)
	}
	return rows, nil
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]JobAssignment, error) {
	var rows []JobAssignment
	for _, j := range f.rows {
		if j.EmployeeID.String() == employeeID {
			rows = append(rows, *j)
		}
	}
	return rows, nil
}
func (f *fakeRepo) Update(ctx context.Context, j *JobAssignment) error {
	cp := *j
	f.rows[j.ID.String()] = &cp
	return nil
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

type fakeEmployees struct {
	known map[string]*employee.Employee
}

func (f *fakeEmployees) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	e, ok := f.known[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func TestService_Create_UnknownAssignee(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, newFakeRepo(), &fakeEmployees{known: map[string]*employee.Employee{}})

	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		Title:      "Rotate tires",
		EmployeeID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, jobassignmenterrors.ErrEmployeeNotFound)
}

func TestService_StatusWalksForwardOnly(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ctx := context.Background()
	emp := &employee.Employee{ID: uuid.New(), FullName: "Alice"}
	repo := newFakeRepo()
	svc := NewService(db, repo, &fakeEmployees{known: map[string]*employee.Employee{emp.ID.String(): emp}})

	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(ctx, CreateAssignmentRequest{
		Title:      "Rotate tires",
		EmployeeID: emp.ID.String(),
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusAssigned, created.Status)

	inProgress := StatusInProgress
	mock.ExpectBegin()
	mock.ExpectCommit()
	updated, err := svc.Update(ctx, created.ID, UpdateAssignmentRequest{Status: &inProgress})
	assert.NoError(t, err)
	assert.Equal(t, StatusInProgress, updated.Status)

	done := StatusDone
	mock.ExpectBegin()
	mock.ExpectCommit()
	updated, err = svc.Update(ctx, created.ID, UpdateAssignmentRequest{Status: &done})
	assert.NoError(t, err)
	assert.Equal(t, StatusDone, updated.Status)

	// DONE is terminal.
	assigned := StatusAssigned
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Update(ctx, created.ID, UpdateAssignmentRequest{Status: &assigned})
	assert.ErrorIs(t, err, jobassignmenterrors.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Update_PartialFields(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ctx := context.Background()
	emp := &employee.Employee{ID: uuid.New(), FullName: "Alice"}
	repo := newFakeRepo()
	svc := NewService(db, repo, &fakeEmployees{known: map[string]*employee.Employee{emp.ID.String(): emp}})

	due := "2025-07-01"
	mock.ExpectBegin()
	mock.ExpectCommit()
	created, err := svc.Create(ctx, CreateAssignmentRequest{
		Title:       "Rotate tires",
		Description: "front to back",
		EmployeeID:  emp.ID.String(),
		DueDate:     &due,
	})
	assert.NoError(t, err)

	title := "Rotate and balance tires"
	mock.ExpectBegin()
	mock.ExpectCommit()
	updated, err := svc.Update(ctx, created.ID, UpdateAssignmentRequest{Title: &title})
	assert.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "front to back", updated.Description)
	assert.Equal(t, &due, updated.DueDate)
	assert.Equal(t, StatusAssigned, updated.Status)
}
