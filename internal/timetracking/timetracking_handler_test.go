package timetracking_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/timetracking"
	timetrackingerrors "github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/timetracking/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	startTimerFn             func(ctx context.Context, employeeID string, req timetracking.StartTimerRequest) (timetracking.TimerResponse, error)
	stopTimerFn              func(ctx context.Context, timerID, employeeID string, req timetracking.StopTimerRequest) (timetracking.StopTimerResponse, error)
	getActiveTimerFn         func(ctx context.Context, employeeID string) (*timetracking.TimerResponse, error)
	createTimeLogFn          func(ctx context.Context, employeeID string, req timetracking.CreateTimeLogRequest) (timetracking.TimeLogResponse, error)
	updateTimeLogFn          func(ctx context.Context, id, employeeID string, req timetracking.UpdateTimeLogRequest) (timetracking.TimeLogResponse, error)
	deleteTimeLogFn          func(ctx context.Context, id, employeeID string) error
	listTimeLogsByEmployeeFn func(ctx context.Context, employeeID string) ([]timetracking.TimeLogResponse, error)
	listByAppointmentFn      func(ctx context.Context, appointmentID string) ([]timetracking.TimeLogResponse, error)
}

func (f *fakeService) StartTimer(ctx context.Context, employeeID string, req timetracking.StartTimerRequest) (timetracking.TimerResponse, error) {
	return f.startTimerFn(ctx, employeeID, req)
}
func (f *fakeService) StopTimer(ctx context.Context, timerID, employeeID string, req timetracking.StopTimerRequest) (timetracking.StopTimerResponse, error) {
	return f.stopTimerFn(ctx, timerID, employeeID, req)
}
func (f *fakeService) GetActiveTimer(ctx context.Context, employeeID string) (*timetracking.TimerResponse, error) {
	return f.getActiveTimerFn(ctx, employeeID)
}
func (f *fakeService) CreateTimeLog(ctx context.Context, employeeID string, req timetracking.CreateTimeLogRequest) (timetracking.TimeLogResponse, error) {
	return f.createTimeLogFn(ctx, employeeID, req)
}
func (f *fakeService) UpdateTimeLog(ctx context.Context, id, employeeID string, req timetracking.UpdateTimeLogRequest) (timetracking.TimeLogResponse, error) {
	return f.updateTimeLogFn(ctx, id, employeeID, req)
}
func (f *fakeService) DeleteTimeLog(ctx context.Context, id, employeeID string) error {
	return f.deleteTimeLogFn(ctx, id, employeeID)
}
func (f *fakeService) ListTimeLogsByEmployee(ctx context.Context, employeeID string) ([]timetracking.TimeLogResponse, error) {
	return f.listTimeLogsByEmployeeFn(ctx, employeeID)
}
func (f *fakeService) ListTimeLogsByAppointment(ctx context.Context, appointmentID string) ([]timetracking.TimeLogResponse, error) {
	return f.listByAppointmentFn(ctx, appointmentID)
}

func TestHandler_StartTimer_RequiresEmployeeToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := timetracking.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/timers", strings.NewReader(`{"appointment_id":"x"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.StartTimer(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_StartAndStopTimer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()
	timerID := uuid.New().String()
	apptID := uuid.New().String()

	svc := &fakeService{
		startTimerFn: func(ctx context.Context, eid string, req timetracking.StartTimerRequest) (timetracking.TimerResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, apptID, req.AppointmentID)
			return timetracking.TimerResponse{ID: timerID, EmployeeID: eid, Active: true}, nil
		},
		stopTimerFn: func(ctx context.Context, tid, eid string, req timetracking.StopTimerRequest) (timetracking.StopTimerResponse, error) {
			assert.Equal(t, timerID, tid)
			assert.Equal(t, "diagnostics", req.Description)
			return timetracking.StopTimerResponse{
				TimeLog: timetracking.TimeLogResponse{Hours: 0.75},
			}, nil
		},
	}
	h := timetracking.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/timers", strings.NewReader(`{"appointment_id":"`+apptID+`"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.StartTimer(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("employee_id", employeeID)
	c2.Params = gin.Params{{Key: "id", Value: timerID}}
	c2.Request = httptest.NewRequest(http.MethodPost, "/timers/"+timerID+"/stop", strings.NewReader(`{"description":"diagnostics"}`))
	c2.Request.Header.Set("Content-Type", "application/json")
	h.StopTimer(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "0.75")
}

func TestHandler_StopTimer_ConflictSurfacesAs409(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		startTimerFn: func(ctx context.Context, eid string, req timetracking.StartTimerRequest) (timetracking.TimerResponse, error) {
			return timetracking.TimerResponse{}, timetrackingerrors.ErrTimerAlreadyActive
		},
	}
	h := timetracking.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/timers", strings.NewReader(`{"appointment_id":"`+uuid.New().String()+`"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.StartTimer(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_GetActiveTimer_NullWhenIdle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		getActiveTimerFn: func(ctx context.Context, eid string) (*timetracking.TimerResponse, error) {
			return nil, nil
		},
	}
	h := timetracking.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodGet, "/timers/active", nil)
	h.GetActiveTimer(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"data\":null")
}
