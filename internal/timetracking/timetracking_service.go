package timetracking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/appointment"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/employee"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/events"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/messaging/kafka"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/shared/contextutil"
	timetrackingerrors "github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/timetracking/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeDirectory is the slice of the employee module timer and log
// operations need: confirm the employee exists.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
}

//go:generate mockgen -source=timetracking_service.go -destination=mock/timetracking_service_mock.go -package=mock
type Service interface {
	StartTimer(ctx context.Context, employeeID string, req StartTimerRequest) (TimerResponse, error)
	StopTimer(ctx context.Context, timerID, employeeID string, req StopTimerRequest) (StopTimerResponse, error)
	GetActiveTimer(ctx context.Context, employeeID string) (*TimerResponse, error)
	CreateTimeLog(ctx context.Context, employeeID string, req CreateTimeLogRequest) (TimeLogResponse, error)
	UpdateTimeLog(ctx context.Context, id, employeeID string, req UpdateTimeLogRequest) (TimeLogResponse, error)
	DeleteTimeLog(ctx context.Context, id, employeeID string) error
	ListTimeLogsByEmployee(ctx context.Context, employeeID string) ([]TimeLogResponse, error)
	ListTimeLogsByAppointment(ctx context.Context, appointmentID string) ([]TimeLogResponse, error)
}

type service struct {
	db           *sql.DB
	timers       TimerRepository
	logs         TimeLogRepository
	appointments appointment.Repository
	employees    EmployeeDirectory
	outbox       kafka.OutboxRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewService(
	db *sql.DB,
	timers TimerRepository,
	logs TimeLogRepository,
	appointments appointment.Repository,
	employees EmployeeDirectory,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("timetracking.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timetracking.service")
	}
	return &service{
		db:           db,
		timers:       timers,
		logs:         logs,
		appointments: appointments,
		employees:    employees,
		outbox:       outboxRepo,
		logger:       l,
		now:          time.Now,
	}
}

func (s *service) StartTimer(ctx context.Context, employeeID string, req StartTimerRequest) (TimerResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("start timer requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("appointment_id", req.AppointmentID),
	)

	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return TimerResponse{}, timetrackingerrors.ErrInvalidEmployeeID
	}
	apptID, err := uuid.Parse(req.AppointmentID)
	if err != nil {
		return TimerResponse{}, timetrackingerrors.ErrInvalidAppointmentID
	}

	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimerResponse{}, timetrackingerrors.ErrEmployeeNotFound
		}
		s.logger.Error("start timer employee lookup failed", zap.Error(err))
		return TimerResponse{}, err
	}
	if _, err := s.appointments.FindByID(ctx, req.AppointmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimerResponse{}, timetrackingerrors.ErrAppointmentNotFound
		}
		s.logger.Error("start timer appointment lookup failed", zap.Error(err))
		return TimerResponse{}, err
	}

	// Fast path: reject before hitting the unique index. Two racing starts
	// can both pass this check; the index catches the loser below.
	if _, err := s.timers.FindActiveByEmployee(ctx, employeeID); err == nil {
		return TimerResponse{}, timetrackingerrors.ErrTimerAlreadyActive
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("start timer active lookup failed", zap.Error(err))
		return TimerResponse{}, err
	}

	t := &Timer{
		ID:            uuid.New(),
		EmployeeID:    empID,
		AppointmentID: apptID,
		StartTime:     s.now().UTC(),
		Active:        true,
	}
	if err := s.timers.Create(ctx, t); err != nil {
		mapped := mapTimerError(err)
		if !errors.Is(mapped, timetrackingerrors.ErrTimerAlreadyActive) {
			s.logger.Error("start timer persist failed", zap.Error(err))
		}
		return TimerResponse{}, mapped
	}

	s.logger.Info("start timer success",
		zap.String("request_id", rid),
		zap.String("timer_id", t.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapTimerToResponse(*t), nil
}

func (s *service) StopTimer(ctx context.Context, timerID, employeeID string, req StopTimerRequest) (StopTimerResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("stop timer requested",
		zap.String("request_id", rid),
		zap.String("timer_id", timerID),
		zap.String("employee_id", employeeID),
	)

	if _, err := uuid.Parse(timerID); err != nil {
		return StopTimerResponse{}, timetrackingerrors.ErrTimerNotFound
	}
	if strings.TrimSpace(req.Description) == "" {
		return StopTimerResponse{}, timetrackingerrors.ErrDescriptionRequired
	}

	t, err := s.timers.FindByID(ctx, timerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StopTimerResponse{}, timetrackingerrors.ErrTimerNotFound
		}
		s.logger.Error("stop timer fetch failed", zap.Error(err))
		return StopTimerResponse{}, err
	}
	if t.EmployeeID.String() != employeeID {
		return StopTimerResponse{}, timetrackingerrors.ErrNotTimerOwner
	}
	if !t.Active {
		return StopTimerResponse{}, timetrackingerrors.ErrTimerNotActive
	}

	now := s.now().UTC()
	elapsedSeconds := int64(now.Sub(t.StartTime) / time.Second)
	rawHours := float64(elapsedSeconds) / 3600.0
	// The minimum is checked on raw hours before rounding: a 71-second run
	// rounds up to 0.02 but still fails, while 72 seconds passes exactly.
	if rawHours < MinTimerHours {
		return StopTimerResponse{}, timetrackingerrors.ErrTimerTooShort
	}
	hours := roundHalfUp2(rawHours)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("stop timer begin tx failed", zap.Error(err))
		return StopTimerResponse{}, err
	}
	defer tx.Rollback()

	t.EndTime = &now
	t.Active = false
	if err := s.timers.WithTx(tx).Update(ctx, t); err != nil {
		s.logger.Error("stop timer persist failed", zap.Error(err))
		return StopTimerResponse{}, err
	}

	l := &TimeLog{
		ID:            uuid.New(),
		EmployeeID:    t.EmployeeID,
		AppointmentID: t.AppointmentID,
		Date:          time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Hours:         hours,
		Description:   req.Description,
		Status:        LogStatusCompleted,
		Billable:      true,
	}
	if err := s.logs.WithTx(tx).Create(ctx, l); err != nil {
		s.logger.Error("stop timer create log failed", zap.Error(err))
		return StopTimerResponse{}, err
	}

	if err := s.recomputeActualHours(ctx, tx, t.AppointmentID.String()); err != nil {
		return StopTimerResponse{}, err
	}
	if err := s.queueWorkloadRefresh(ctx, tx, t.EmployeeID.String(), t.AppointmentID.String()); err != nil {
		return StopTimerResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("stop timer commit failed", zap.Error(err))
		return StopTimerResponse{}, err
	}

	s.logger.Info("stop timer success",
		zap.String("request_id", rid),
		zap.String("timer_id", t.ID.String()),
		zap.Float64("hours", hours),
	)
	return StopTimerResponse{
		Timer:   mapTimerToResponse(*t),
		TimeLog: mapTimeLogToResponse(*l),
	}, nil
}

// GetActiveTimer returns nil without error when the employee has no running
// timer.
func (s *service) GetActiveTimer(ctx context.Context, employeeID string) (*TimerResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, timetrackingerrors.ErrInvalidEmployeeID
	}
	t, err := s.timers.FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := mapTimerToResponse(*t)
	return &resp, nil
}

func (s *service) CreateTimeLog(ctx context.Context, employeeID string, req CreateTimeLogRequest) (TimeLogResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create time log requested",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("appointment_id", req.AppointmentID),
	)

	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return TimeLogResponse{}, timetrackingerrors.ErrInvalidEmployeeID
	}
	apptID, err := uuid.Parse(req.AppointmentID)
	if err != nil {
		return TimeLogResponse{}, timetrackingerrors.ErrInvalidAppointmentID
	}
	date, err := s.parseLogDate(req.Date)
	if err != nil {
		return TimeLogResponse{}, err
	}
	if req.Hours <= 0 || req.Hours > 24 {
		return TimeLogResponse{}, timetrackingerrors.ErrInvalidHours
	}
	if strings.TrimSpace(req.Description) == "" {
		return TimeLogResponse{}, timetrackingerrors.ErrDescriptionRequired
	}
	status := req.Status
	if status == "" {
		status = LogStatusCompleted
	}
	if !IsValidLogStatus(status) {
		return TimeLogResponse{}, timetrackingerrors.ErrInvalidTimeLogStatus
	}

	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeLogResponse{}, timetrackingerrors.ErrEmployeeNotFound
		}
		s.logger.Error("create time log employee lookup failed", zap.Error(err))
		return TimeLogResponse{}, err
	}
	if _, err := s.appointments.FindByID(ctx, req.AppointmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeLogResponse{}, timetrackingerrors.ErrAppointmentNotFound
		}
		s.logger.Error("create time log appointment lookup failed", zap.Error(err))
		return TimeLogResponse{}, err
	}

	billable := true
	if req.Billable != nil {
		billable = *req.Billable
	}
	l := &TimeLog{
		ID:            uuid.New(),
		EmployeeID:    empID,
		AppointmentID: apptID,
		Date:          date,
		Hours:         req.Hours,
		Description:   req.Description,
		Status:        status,
		Billable:      billable,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create time log begin tx failed", zap.Error(err))
		return TimeLogResponse{}, err
	}
	defer tx.Rollback()

	if err := s.logs.WithTx(tx).Create(ctx, l); err != nil {
		s.logger.Error("create time log persist failed", zap.Error(err))
		return TimeLogResponse{}, err
	}
	if err := s.recomputeActualHours(ctx, tx, req.AppointmentID); err != nil {
		return TimeLogResponse{}, err
	}
	if err := s.queueWorkloadRefresh(ctx, tx, employeeID, req.AppointmentID); err != nil {
		return TimeLogResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create time log commit failed", zap.Error(err))
		return TimeLogResponse{}, err
	}

	s.logger.Info("create time log success",
		zap.String("request_id", rid),
		zap.String("time_log_id", l.ID.String()),
		zap.Float64("hours", l.Hours),
	)
	return mapTimeLogToResponse(*l), nil
}

func (s *service) UpdateTimeLog(ctx context.Context, id, employeeID string, req UpdateTimeLogRequest) (TimeLogResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update time log requested",
		zap.String("request_id", rid),
		zap.String("time_log_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return TimeLogResponse{}, timetrackingerrors.ErrTimeLogNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update time log begin tx failed", zap.Error(err))
		return TimeLogResponse{}, err
	}
	defer tx.Rollback()

	qlogs := s.logs.WithTx(tx)
	l, err := qlogs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeLogResponse{}, timetrackingerrors.ErrTimeLogNotFound
		}
		s.logger.Error("update time log fetch failed", zap.Error(err))
		return TimeLogResponse{}, err
	}
	if l.EmployeeID.String() != employeeID {
		return TimeLogResponse{}, timetrackingerrors.ErrNotTimeLogOwner
	}

	// Partial-update semantics: only provided fields change.
	if req.Date != nil {
		date, err := s.parseLogDate(*req.Date)
		if err != nil {
			return TimeLogResponse{}, err
		}
		l.Date = date
	}
	if req.Hours != nil {
		if *req.Hours <= 0 || *req.Hours > 24 {
			return TimeLogResponse{}, timetrackingerrors.ErrInvalidHours
		}
		l.Hours = *req.Hours
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return TimeLogResponse{}, timetrackingerrors.ErrDescriptionRequired
		}
		l.Description = *req.Description
	}
	if req.Status != nil {
		if !IsValidLogStatus(*req.Status) {
			return TimeLogResponse{}, timetrackingerrors.ErrInvalidTimeLogStatus
		}
		l.Status = *req.Status
	}
	if req.Billable != nil {
		l.Billable = *req.Billable
	}

	if err := qlogs.Update(ctx, l); err != nil {
		s.logger.Error("update time log persist failed", zap.Error(err))
		return TimeLogResponse{}, err
	}
	if err := s.recomputeActualHours(ctx, tx, l.AppointmentID.String()); err != nil {
		return TimeLogResponse{}, err
	}
	if err := s.queueWorkloadRefresh(ctx, tx, l.EmployeeID.String(), l.AppointmentID.String()); err != nil {
		return TimeLogResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update time log commit failed", zap.Error(err))
		return TimeLogResponse{}, err
	}

	s.logger.Info("update time log success",
		zap.String("request_id", rid),
		zap.String("time_log_id", id),
	)
	return mapTimeLogToResponse(*l), nil
}

func (s *service) DeleteTimeLog(ctx context.Context, id, employeeID string) error {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return timetrackingerrors.ErrTimeLogNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete time log begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qlogs := s.logs.WithTx(tx)
	l, err := qlogs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return timetrackingerrors.ErrTimeLogNotFound
		}
		s.logger.Error("delete time log fetch failed", zap.Error(err))
		return err
	}
	if l.EmployeeID.String() != employeeID {
		return timetrackingerrors.ErrNotTimeLogOwner
	}

	if err := qlogs.Delete(ctx, id); err != nil {
		s.logger.Error("delete time log failed", zap.Error(err))
		return err
	}
	if err := s.recomputeActualHours(ctx, tx, l.AppointmentID.String()); err != nil {
		return err
	}
	if err := s.queueWorkloadRefresh(ctx, tx, l.EmployeeID.String(), l.AppointmentID.String()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete time log commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete time log success",
		zap.String("request_id", rid),
		zap.String("time_log_id", id),
	)
	return nil
}

func (s *service) ListTimeLogsByEmployee(ctx context.Context, employeeID string) ([]TimeLogResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, timetrackingerrors.ErrInvalidEmployeeID
	}
	rows, err := s.logs.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapTimeLogsToResponse(rows), nil
}

func (s *service) ListTimeLogsByAppointment(ctx context.Context, appointmentID string) ([]TimeLogResponse, error) {
	if _, err := uuid.Parse(appointmentID); err != nil {
		return nil, timetrackingerrors.ErrInvalidAppointmentID
	}
	rows, err := s.logs.FindAllByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	return mapTimeLogsToResponse(rows), nil
}

// recomputeActualHours re-derives the appointment's actual_hours from every
// employee's logs, not just the caller's.
func (s *service) recomputeActualHours(ctx context.Context, tx *sql.Tx, appointmentID string) error {
	total, err := s.logs.WithTx(tx).SumHoursByAppointment(ctx, appointmentID)
	if err != nil {
		s.logger.Error("recompute actual hours sum failed",
			zap.String("appointment_id", appointmentID),
			zap.Error(err),
		)
		return err
	}
	if err := s.appointments.WithTx(tx).UpdateActualHours(ctx, appointmentID, roundHalfUp2(total)); err != nil {
		s.logger.Error("recompute actual hours persist failed",
			zap.String("appointment_id", appointmentID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) queueWorkloadRefresh(ctx context.Context, tx *sql.Tx, employeeID, appointmentID string) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.WorkloadRefreshEvent{
		EventType:     "workload_refresh",
		RequestID:     rid,
		EmployeeID:    employeeID,
		AppointmentID: appointmentID,
		OccurredAt:    s.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal workload refresh event failed", zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee_workload",
		AggregateID:   employeeID,
		EventType:     "workload_refresh",
		Topic:         events.WorkloadRefreshTopic,
		Key:           employeeID,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("queue workload refresh failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// parseLogDate accepts YYYY-MM-DD and rejects dates after today.
func (s *service) parseLogDate(v string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, timetrackingerrors.ErrInvalidDateFormat
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.After(today) {
		return time.Time{}, timetrackingerrors.ErrFutureDate
	}
	return date, nil
}

func mapTimerError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_timer_active_employee" {
			return timetrackingerrors.ErrTimerAlreadyActive
		}
	}
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_timer_active_employee") {
		return timetrackingerrors.ErrTimerAlreadyActive
	}
	return err
}

func roundHalfUp2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func mapTimerToResponse(t Timer) TimerResponse {
	resp := TimerResponse{
		ID:            t.ID.String(),
		EmployeeID:    t.EmployeeID.String(),
		AppointmentID: t.AppointmentID.String(),
		StartTime:     t.StartTime.Format(time.RFC3339),
		Active:        t.Active,
	}
	if t.EndTime != nil {
		end := t.EndTime.Format(time.RFC3339)
		resp.EndTime = &end
	}
	return resp
}

func mapTimeLogToResponse(l TimeLog) TimeLogResponse {
	return TimeLogResponse{
		ID:            l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		AppointmentID: l.AppointmentID.String(),
		Date:          l.Date.Format("2006-01-02"),
		Hours:         l.Hours,
		Description:   l.Description,
		Status:        l.Status,
		Billable:      l.Billable,
	}
}

func mapTimeLogsToResponse(rows []TimeLog) []TimeLogResponse {
	resp := make([]TimeLogResponse, 0, len(rows))
	for _, l := range rows {
		resp = append(resp, mapTimeLogToResponse(l))
	}
	return resp
}
