package timetracking

import (
	"net/http"

	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/shared/apperror"
	"github.com/ColabDevelopers/dev-autocare360-backend-sub000/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// employeeFromToken requires an employee-backed token; customers have no
// employee_id claim and are rejected.
func employeeFromToken(c *gin.Context) (string, bool) {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Employee account required", nil)
		return "", false
	}
	return employeeID, true
}

func (h *Handler) StartTimer(c *gin.Context) {
	employeeID, ok := employeeFromToken(c)
	if !ok {
		return
	}

	var req StartTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.StartTimer(c.Request.Context(), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) StopTimer(c *gin.Context) {
	employeeID, ok := employeeFromToken(c)
	if !ok {
		return
	}

	var req StopTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.StopTimer(c.Request.Context(), c.Param("id"), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// GetActiveTimer returns null data when no timer is running.
func (h *Handler) GetActiveTimer(c *gin.Context) {
	employeeID, ok := employeeFromToken(c)
	if !ok {
		return
	}

	resp, err := h.service.GetActiveTimer(c.Request.Context(), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateTimeLog(c *gin.Context) {
	employeeID, ok := employeeFromToken(c)
	if !ok {
		return
	}

	var req CreateTimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.CreateTimeLog(c.Request.Context(), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateTimeLog(c *gin.Context) {
	employeeID, ok := employeeFromToken(c)
	if !ok {
		return
	}

	var req UpdateTimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.UpdateTimeLog(c.Request.Context(), c.Param("id"), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteTimeLog(c *gin.Context) {
	employeeID, ok := employeeFromToken(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTimeLog(c.Request.Context(), c.Param("id"), employeeID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// ListMyTimeLogs returns the calling employee's logs, most recent first.
func (h *Handler) ListMyTimeLogs(c *gin.Context) {
	employeeID, ok := employeeFromToken(c)
	if !ok {
		return
	}

	resp, err := h.service.ListTimeLogsByEmployee(c.Request.Context(), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListByEmployee(c *gin.Context) {
	resp, err := h.service.ListTimeLogsByEmployee(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListByAppointment(c *gin.Context) {
	resp, err := h.service.ListTimeLogsByAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
