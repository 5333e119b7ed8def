package timetracking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/appointment"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/employee"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/events"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/messaging/kafka"
	timetrackingerrors "github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/timetracking/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeTimerRepo struct {
	timers map[string]*Timer
}

func newFakeTimerRepo() *fakeTimerRepo {
	return &fakeTimerRepo{timers: make(map[string]*Timer)}
}

func (f *fakeTimerRepo) WithTx(tx *sql.Tx) TimerRepository { return f }
func (f *fakeTimerRepo) Create(ctx context.Context, t *Timer) error {
	for _, existing := range f.timers {
		if existing.EmployeeID == t.EmployeeID && existing.Active {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_timer_active_employee"}
		}
	}
	cp := *t
	f.timers[t.ID.String()] = &cp
	return nil
}
func (f *fakeTimerRepo) FindByID(ctx context.Context, id string) (*Timer, error) {
	t, ok := f.timers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}
func (f *fakeTimerRepo) FindActiveByEmployee(ctx context.Context, employeeID string) (*Timer, error) {
	for _, t := range f.timers {
		if t.EmployeeID.String() == employeeID && t.Active {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeTimerRepo) Update(ctx context.Context, t *Timer) error {
	cp := *t
	f.timers[t.ID.String()] = &cp
	return nil
}

type fakeTimeLogRepo struct {
	logs map[string]*TimeLog
}

func newFakeTimeLogRepo() *fakeTimeLogRepo {
	return &fakeTimeLogRepo{logs: make(map[string]*TimeLog)}
}

func (f *fakeTimeLogRepo) WithTx(tx *sql.Tx) TimeLogRepository { return f }
func (f *fakeTimeLogRepo) Create(ctx context.Context, l *TimeLog) error {
	cp := *l
	f.logs[l.ID.String()] = &cp
	return nil
}
func (f *fakeTimeLogRepo) FindByID(ctx context.Context, id string) (*TimeLog, error) {
	l, ok := f.logs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}
func (f *fakeTimeLogRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]TimeLog, error) {
	var rows []TimeLog
	for _, l := range f.logs {
		if l.EmployeeID.String() == employeeID {
			rows = append(rows, *l)
		}
	}
	return rows, nil
}
func (f *fakeTimeLogRepo) FindAllByAppointment(ctx context.Context, appointmentID string) ([]TimeLog, error) {
	var rows []TimeLog
	for _, l := range f.logs {
		if l.AppointmentID.String() == appointmentID {
			rows = append(rows, *l)
		}
	}
	return rows, nil
}
func (f *fakeTimeLogRepo) Update(ctx context.Context, l *TimeLog) error {
	cp := *l
	f.logs[l.ID.String()] = &cp
	return nil
}
func (f *fakeTimeLogRepo) Delete(ctx context.Context, id string) error {
	delete(f.logs, id)
	return nil
}
func (f *fakeTimeLogRepo) SumHoursByAppointment(ctx context.Context, appointmentID string) (float64, error) {
	var total float64
	for _, l := range f.logs {
		if l.AppointmentID.String() == appointmentID {
			total += l.Hours
		}
	}
	return total, nil
}
func (f *fakeTimeLogRepo) SumHoursByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) (float64, error) {
	var total float64
	for _, l := range f.logs {
		if l.EmployeeID.String() == employeeID && !l.Date.Before(from) && !l.Date.After(to) {
			total += l.Hours
		}
	}
	return total, nil
}

type fakeAppointments struct {
	appointments map[string]*appointment.Appointment
	actualHours  map[string]float64
}

func newFakeAppointments(rows ...*appointment.Appointment) *fakeAppointments {
	f := &fakeAppointments{
		appointments: make(map[string]*appointment.Appointment),
		actualHours:  make(map[string]float64),
	}
	for _, a := range rows {
		f.appointments[a.ID.String()] = a
	}
	return f
}

func (f *fakeAppointments) WithTx(tx *sql.Tx) appointment.Repository { return f }
func (f *fakeAppointments) Create(ctx context.Context, a *appointment.Appointment) error {
	f.appointments[a.ID.String()] = a
	return nil
}
func (f *fakeAppointments) FindByID(ctx context.Context, id string) (*appointment.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}
func (f *fakeAppointments) Update(ctx context.Context, a *appointment.Appointment) error { return nil }
func (f *fakeAppointments) Delete(ctx context.Context, id string) error                  { return nil }
func (f *fakeAppointments) FindAll(ctx context.Context) ([]appointment.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointments) FindAllByCustomer(ctx context.Context, customerID string) ([]appointment.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointments) FindByEmployeeAndStatuses(ctx context.Context, employeeID string, statuses []string) ([]appointment.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointments) FindActiveByDate(ctx context.Context, date time.Time) ([]appointment.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointments) FindActiveByDateAndTechnician(ctx context.Context, date time.Time, technicianName string) ([]appointment.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointments) UpdateActualHours(ctx context.Context, id string, hours float64) error {
	f.actualHours[id] = hours
	return nil
}

type fakeEmployees struct {
	employees map[string]*employee.Employee
}

func newFakeEmployees(rows ...*employee.Employee) *fakeEmployees {
	f := &fakeEmployees{employees: make(map[string]*employee.Employee)}
	for _, e := range rows {
		f.employees[e.ID.String()] = e
	}
	return f
}

func (f *fakeEmployees) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
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
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error               { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type fixture struct {
	db          *sql.DB
	mock        sqlmock.Sqlmock
	timers      *fakeTimerRepo
	logs        *fakeTimeLogRepo
	appts       *fakeAppointments
	emps        *fakeEmployees
	outbox      *fakeOutbox
	svc         *service
	employeeID  uuid.UUID
	apptID      uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	employeeID := uuid.New()
	apptID := uuid.New()
	fx := &fixture{
		db:         db,
		mock:       mock,
		timers:     newFakeTimerRepo(),
		logs:       newFakeTimeLogRepo(),
		appts:      newFakeAppointments(&appointment.Appointment{ID: apptID}),
		emps:       newFakeEmployees(&employee.Employee{ID: employeeID, FullName: "Alice"}),
		outbox:     &fakeOutbox{},
		employeeID: employeeID,
		apptID:     apptID,
	}
	fx.svc = NewService(db, fx.timers, fx.logs, fx.appts, fx.emps, fx.outbox).(*service)
	return fx
}

func TestService_StartTimer_Success(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.svc.StartTimer(context.Background(), fx.employeeID.String(), StartTimerRequest{
		AppointmentID: fx.apptID.String(),
	})
	assert.NoError(t, err)
	assert.True(t, resp.Active)
	assert.Equal(t, fx.employeeID.String(), resp.EmployeeID)
	assert.Equal(t, fx.apptID.String(), resp.AppointmentID)
}

func TestService_StartTimer_SecondTimerRejected(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.svc.StartTimer(ctx, fx.employeeID.String(), StartTimerRequest{AppointmentID: fx.apptID.String()})
	assert.NoError(t, err)

	_, err = fx.svc.StartTimer(ctx, fx.employeeID.String(), StartTimerRequest{AppointmentID: fx.apptID.String()})
	assert.ErrorIs(t, err, timetrackingerrors.ErrTimerAlreadyActive)
}

func TestService_StartTimer_UniqueViolationMapped(t *testing.T) {
	// The read check misses a racing insert; the storage constraint still
	// maps back to the conflict error.
	fx := newFixture(t)
	ctx := context.Background()

	fx.timers.timers["ghost"] = &Timer{
		ID:         uuid.New(),
		EmployeeID: fx.employeeID,
		Active:     true,
	}
	raced := newFakeTimerRepo()
	raced.timers = fx.timers.timers
	svc := NewService(fx.db, &racingTimerRepo{inner: raced}, fx.logs, fx.appts, fx.emps, fx.outbox)

	_, err := svc.StartTimer(ctx, fx.employeeID.String(), StartTimerRequest{AppointmentID: fx.apptID.String()})
	assert.ErrorIs(t, err, timetrackingerrors.ErrTimerAlreadyActive)
}

// racingTimerRepo reports no active timer on read but keeps the unique
// constraint on write, reproducing the read-then-insert race.
type racingTimerRepo struct {
	inner *fakeTimerRepo
}

func (r *racingTimerRepo) WithTx(tx *sql.Tx) TimerRepository { return r }
func (r *racingTimerRepo) Create(ctx context.Context, t *Timer) error {
	return r.inner.Create(ctx, t)
}
func (r *racingTimerRepo) FindByID(ctx context.Context, id string) (*Timer, error) {
	return r.inner.FindByID(ctx, id)
}
func (r *racingTimerRepo) FindActiveByEmployee(ctx context.Context, employeeID string) (*Timer, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *racingTimerRepo) Update(ctx context.Context, t *Timer) error {
	return r.inner.Update(ctx, t)
}

func TestService_StartTimer_UnknownEmployeeOrAppointment(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.svc.StartTimer(ctx, uuid.New().String(), StartTimerRequest{AppointmentID: fx.apptID.String()})
	assert.ErrorIs(t, err, timetrackingerrors.ErrEmployeeNotFound)

	_, err = fx.svc.StartTimer(ctx, fx.employeeID.String(), StartTimerRequest{AppointmentID: uuid.New().String()})
	assert.ErrorIs(t, err, timetrackingerrors.ErrAppointmentNotFound)
}

func startTimerAt(t *testing.T, fx *fixture, start time.Time) TimerResponse {
	t.Helper()
	fx.svc.now = func() time.Time { return start }
	resp, err := fx.svc.StartTimer(context.Background(), fx.employeeID.String(), StartTimerRequest{
		AppointmentID: fx.apptID.String(),
	})
	assert.NoError(t, err)
	return resp
}

func TestService_StopTimer_71SecondsTooShort(t *testing.T) {
	fx := newFixture(t)
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	resp := startTimerAt(t, fx, start)

	fx.svc.now = func() time.Time { return start.Add(71 * time.Second) }
	_, err := fx.svc.StopTimer(context.Background(), resp.ID, fx.employeeID.String(), StopTimerRequest{Description: "quick check"})
	assert.ErrorIs(t, err, timetrackingerrors.ErrTimerTooShort)
}

func TestService_StopTimer_72SecondsProducesMinimumLog(t *testing.T) {
	fx := newFixture(t)
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	resp := startTimerAt(t, fx, start)

	fx.svc.now = func() time.Time { return start.Add(72 * time.Second) }
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	stopped, err := fx.svc.StopTimer(context.Background(), resp.ID, fx.employeeID.String(), StopTimerRequest{Description: "quick check"})
	assert.NoError(t, err)
	assert.Equal(t, 0.02, stopped.TimeLog.Hours)
	assert.False(t, stopped.Timer.Active)
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestService_StopTimer_45MinutesConvertsTo075(t *testing.T) {
	fx := newFixture(t)
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	resp := startTimerAt(t, fx, start)

	fx.svc.now = func() time.Time { return start.Add(45 * time.Minute) }
	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	stopped, err := fx.svc.StopTimer(context.Background(), resp.ID, fx.employeeID.String(), StopTimerRequest{Description: "diagnostics"})
	assert.NoError(t, err)
	assert.Equal(t, 0.75, stopped.TimeLog.Hours)
	assert.Equal(t, LogStatusCompleted, stopped.TimeLog.Status)
	assert.Equal(t, "2025-06-02", stopped.TimeLog.Date)
	assert.Equal(t, 0.75, fx.appts.actualHours[fx.apptID.String()])

	// Outbox carries a workload refresh ping for the employee.
	assert.Len(t, fx.outbox.created, 1)
	assert.Equal(t, events.WorkloadRefreshTopic, fx.outbox.created[0].Topic)
	assert.Equal(t, fx.employeeID.String(), fx.outbox.created[0].PartitionKey())
}

func TestService_StopTimer_OwnershipAndState(t *testing.T) {
	fx := newFixture(t)
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	resp := startTimerAt(t, fx, start)

	fx.svc.now = func() time.Time { return start.Add(time.Hour) }
	_, err := fx.svc.StopTimer(context.Background(), resp.ID, uuid.New().String(), StopTimerRequest{Description: "x"})
	assert.ErrorIs(t, err, timetrackingerrors.ErrNotTimerOwner)

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	_, err = fx.svc.StopTimer(context.Background(), resp.ID, fx.employeeID.String(), StopTimerRequest{Description: "x"})
	assert.NoError(t, err)

	_, err = fx.svc.StopTimer(context.Background(), resp.ID, fx.employeeID.String(), StopTimerRequest{Description: "x"})
	assert.ErrorIs(t, err, timetrackingerrors.ErrTimerNotActive)
}

func TestService_CreateTimeLog_HoursBoundaries(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.svc.now = func() time.Time { return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) }

	base := CreateTimeLogRequest{
		AppointmentID: fx.apptID.String(),
		Date:          "2025-06-01",
		Description:   "brake job",
	}

	for _, hours := range []float64{0, -1, 24.01} {
		req := base
		req.Hours = hours
		_, err := fx.svc.CreateTimeLog(ctx, fx.employeeID.String(), req)
		assert.ErrorIs(t, err, timetrackingerrors.ErrInvalidHours, "hours=%v", hours)
	}

	for _, hours := range []float64{24.0, 0.01} {
		req := base
		req.Hours = hours
		fx.mock.ExpectBegin()
		fx.mock.ExpectCommit()
		resp, err := fx.svc.CreateTimeLog(ctx, fx.employeeID.String(), req)
		assert.NoError(t, err, "hours=%v", hours)
		assert.Equal(t, hours, resp.Hours)
	}
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestService_CreateTimeLog_RejectsFutureDate(t *testing.T) {
	fx := newFixture(t)
	fx.svc.now = func() time.Time { return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) }

	_, err := fx.svc.CreateTimeLog(context.Background(), fx.employeeID.String(), CreateTimeLogRequest{
		AppointmentID: fx.apptID.String(),
		Date:          "2025-06-03",
		Hours:         1,
		Description:   "tomorrow's work",
	})
	assert.ErrorIs(t, err, timetrackingerrors.ErrFutureDate)
}

func TestService_RecomputeSumsAcrossEmployees(t *testing.T) {
	// Two employees log against the same appointment; actual hours must be
	// the total of both, not the last writer's share.
	fx := newFixture(t)
	ctx := context.Background()
	fx.svc.now = func() time.Time { return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) }

	second := &employee.Employee{ID: uuid.New(), FullName: "Bob"}
	fx.emps.employees[second.ID.String()] = second

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	_, err := fx.svc.CreateTimeLog(ctx, fx.employeeID.String(), CreateTimeLogRequest{
		AppointmentID: fx.apptID.String(),
		Date:          "2025-06-01",
		Hours:         2.5,
		Description:   "teardown",
	})
	assert.NoError(t, err)
	assert.Equal(t, 2.5, fx.appts.actualHours[fx.apptID.String()])

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	_, err = fx.svc.CreateTimeLog(ctx, second.ID.String(), CreateTimeLogRequest{
		AppointmentID: fx.apptID.String(),
		Date:          "2025-06-01",
		Hours:         1.25,
		Description:   "reassembly",
	})
	assert.NoError(t, err)
	assert.Equal(t, 3.75, fx.appts.actualHours[fx.apptID.String()])
}

func TestService_UpdateTimeLog_OwnershipChecked(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.svc.now = func() time.Time { return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) }

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	created, err := fx.svc.CreateTimeLog(ctx, fx.employeeID.String(), CreateTimeLogRequest{
		AppointmentID: fx.apptID.String(),
		Date:          "2025-06-01",
		Hours:         2,
		Description:   "inspection",
	})
	assert.NoError(t, err)

	hours := 3.0
	fx.mock.ExpectBegin()
	fx.mock.ExpectRollback()
	_, err = fx.svc.UpdateTimeLog(ctx, created.ID, uuid.New().String(), UpdateTimeLogRequest{Hours: &hours})
	assert.ErrorIs(t, err, timetrackingerrors.ErrNotTimeLogOwner)

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	updated, err := fx.svc.UpdateTimeLog(ctx, created.ID, fx.employeeID.String(), UpdateTimeLogRequest{Hours: &hours})
	assert.NoError(t, err)
	assert.Equal(t, 3.0, updated.Hours)
	assert.Equal(t, 3.0, fx.appts.actualHours[fx.apptID.String()])
	assert.NoError(t, fx.mock.ExpectationsWereMet())
}

func TestService_DeleteTimeLog_Recomputes(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	fx.svc.now = func() time.Time { return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) }

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	created, err := fx.svc.CreateTimeLog(ctx, fx.employeeID.String(), CreateTimeLogRequest{
		AppointmentID: fx.apptID.String(),
		Date:          "2025-06-01",
		Hours:         2,
		Description:   "inspection",
	})
	assert.NoError(t, err)
	assert.Equal(t, 2.0, fx.appts.actualHours[fx.apptID.String()])

	fx.mock.ExpectBegin()
	fx.mock.ExpectCommit()
	err = fx.svc.DeleteTimeLog(ctx, created.ID, fx.employeeID.String())
	assert.NoError(t, err)
	assert.Equal(t, 0.0, fx.appts.actualHours[fx.apptID.String()])
}

func TestService_GetActiveTimer_NilWhenNoneRunning(t *testing.T) {
	fx := newFixture(t)

	resp, err := fx.svc.GetActiveTimer(context.Background(), fx.employeeID.String())
	assert.NoError(t, err)
	assert.Nil(t, resp)
}
