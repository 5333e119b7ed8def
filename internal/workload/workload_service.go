package workload

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/appointment"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/employee"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/shared/contextutil"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/timetracking"
	workloaderrors "github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/workload/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Classifier thresholds. Utilization is logged week hours against a
// standard 40-hour week, as a percentage.
const (
	standardWeekHours     = 40.0
	overloadedUtilization = 100.0
	busyUtilization       = 80.0
	overloadedActiveCount = 5
	busyActiveCount       = 3
)

// SnapshotCacheKeyPrefix plus the employee id addresses a cached snapshot.
// The refresh consumer warms these keys when logged hours change.
const SnapshotCacheKeyPrefix = "workload:snapshot:"

const snapshotCacheTTL = 5 * time.Minute

// EmployeeDirectory is the slice of the employee module the classifier
// needs: resolve one technician or list the active roster.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
	FindActive(ctx context.Context) ([]employee.Employee, error)
}

//go:generate mockgen -source=workload_service.go -destination=mock/workload_service_mock.go -package=mock
type Service interface {
	GetSnapshot(ctx context.Context, employeeID string) (Snapshot, error)
	GetTeamSnapshot(ctx context.Context) (TeamSnapshot, error)
	RefreshSnapshot(ctx context.Context, employeeID string) (Snapshot, error)
}

type service struct {
	employees    EmployeeDirectory
	appointments appointment.Repository
	logs         timetracking.TimeLogRepository
	rdb          *redis.Client
	sf           *singleflight.Group
	logger       *zap.Logger
	now          func() time.Time
}

func NewService(
	employees EmployeeDirectory,
	appointments appointment.Repository,
	logs timetracking.TimeLogRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("workload.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workload.service")
	}
	return &service{
		employees:    employees,
		appointments: appointments,
		logs:         logs,
		rdb:          rdb,
		sf:           &singleflight.Group{},
		logger:       l,
		now:          time.Now,
	}
}

// GetSnapshot serves from redis when warm and computes behind a singleflight
// otherwise, so dashboard bursts hit the database once per technician.
func (s *service) GetSnapshot(ctx context.Context, employeeID string) (Snapshot, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return Snapshot{}, workloaderrors.ErrInvalidEmployeeID
	}

	cacheKey := SnapshotCacheKeyPrefix + employeeID
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var snap Snapshot
			if err := json.Unmarshal([]byte(cached), &snap); err == nil {
				return snap, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		return s.RefreshSnapshot(ctx, employeeID)
	})
	if err != nil {
		return Snapshot{}, err
	}
	return v.(Snapshot), nil
}

func (s *service) GetTeamSnapshot(ctx context.Context) (TeamSnapshot, error) {
	roster, err := s.employees.FindActive(ctx)
	if err != nil {
		s.logger.Error("team snapshot roster lookup failed", zap.Error(err))
		return TeamSnapshot{}, err
	}

	team := TeamSnapshot{
		Members:     make([]Snapshot, 0, len(roster)),
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
	}
	for _, emp := range roster {
		snap, err := s.GetSnapshot(ctx, emp.ID.String())
		if err != nil {
			return TeamSnapshot{}, err
		}
		team.Members = append(team.Members, snap)
		switch snap.Status {
		case StatusOverloaded:
			team.Overloaded++
		case StatusBusy:
			team.Busy++
		default:
			team.Available++
		}
	}
	return team, nil
}

// RefreshSnapshot recomputes the snapshot from storage and rewrites the
// cache. The workload refresh consumer calls it for every refresh event.
func (s *service) RefreshSnapshot(ctx context.Context, employeeID string) (Snapshot, error) {
	rid := contextutil.GetRequestID(ctx)

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Snapshot{}, workloaderrors.ErrEmployeeNotFound
		}
		s.logger.Error("refresh snapshot employee lookup failed", zap.Error(err))
		return Snapshot{}, err
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := today.AddDate(0, 0, -6)
	monthStart := today.AddDate(0, 0, -29)

	weekHours, err := s.logs.SumHoursByEmployeeBetween(ctx, employeeID, weekStart, today)
	if err != nil {
		s.logger.Error("refresh snapshot week hours failed", zap.Error(err))
		return Snapshot{}, err
	}
	monthHours, err := s.logs.SumHoursByEmployeeBetween(ctx, employeeID, monthStart, today)
	if err != nil {
		s.logger.Error("refresh snapshot month hours failed", zap.Error(err))
		return Snapshot{}, err
	}
	active, err := s.appointments.FindByEmployeeAndStatuses(ctx, employeeID, appointment.ActiveStatuses)
	if err != nil {
		s.logger.Error("refresh snapshot active appointments failed", zap.Error(err))
		return Snapshot{}, err
	}

	// Utilization is a whole percentage rounded half-up, so 31.99 logged
	// hours reads as 80% and crosses the busy threshold.
	utilization := math.Floor(weekHours/standardWeekHours*100 + 0.5)
	snap := Snapshot{
		EmployeeID:         emp.ID.String(),
		EmployeeName:       emp.FullName,
		Specialization:     emp.Specialization,
		Status:             classify(utilization, len(active)),
		Utilization:        utilization,
		WeekHours:          roundHalfUp2(weekHours),
		MonthHours:         roundHalfUp2(monthHours),
		ActiveAppointments: len(active),
		ActiveTasks:        make([]TaskSummary, 0, len(active)),
		UpcomingTasks:      make([]TaskSummary, 0, len(active)),
		GeneratedAt:        now.Format(time.RFC3339),
	}

	weekAhead := today.AddDate(0, 0, 7)
	for _, a := range active {
		task := taskSummaryOf(a)
		if a.Status == appointment.StatusInProgress {
			snap.ActiveTasks = append(snap.ActiveTasks, task)
		} else if !a.Date.Before(today) && !a.Date.After(weekAhead) {
			snap.UpcomingTasks = append(snap.UpcomingTasks, task)
		}
	}

	if s.rdb != nil {
		if jsonData, err := json.Marshal(snap); err == nil {
			if err := s.rdb.Set(ctx, SnapshotCacheKeyPrefix+employeeID, jsonData, snapshotCacheTTL).Err(); err != nil {
				s.logger.Warn("snapshot cache write failed",
					zap.String("employee_id", employeeID),
					zap.Error(err),
				)
			}
		}
	}

	s.logger.Debug("workload snapshot refreshed",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("status", snap.Status),
		zap.Float64("utilization", utilization),
	)
	return snap, nil
}

func classify(utilization float64, activeCount int) string {
	switch {
	case utilization >= overloadedUtilization || activeCount > overloadedActiveCount:
		return StatusOverloaded
	case utilization >= busyUtilization || activeCount > busyActiveCount:
		return StatusBusy
	default:
		return StatusAvailable
	}
}

func taskSummaryOf(a appointment.Appointment) TaskSummary {
	return TaskSummary{
		AppointmentID:  a.ID.String(),
		ServiceType:    a.ServiceType,
		Vehicle:        a.Vehicle,
		Date:           a.Date.Format("2006-01-02"),
		Time:           a.Time,
		Status:         a.Status,
		Priority:       "MEDIUM",
		EstimatedHours: a.EstimatedHours,
	}
}

func roundHalfUp2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
