package timetracking

type StartTimerRequest struct {
	AppointmentID string `json:"appointment_id" binding:"required"`
}

type StopTimerRequest struct {
	Description string `json:"description" binding:"required"`
}

type CreateTimeLogRequest struct {
	AppointmentID string  `json:"appointment_id" binding:"required"`
	Date          string  `json:"date" binding:"required"`
	Hours         float64 `json:"hours" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	Status        string  `json:"status"`
	Billable      *bool   `json:"billable"`
}

// UpdateTimeLogRequest is partial: nil fields stay untouched.
type UpdateTimeLogRequest struct {
	Date        *string  `json:"date"`
	Hours       *float64 `json:"hours"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Billable    *bool    `json:"billable"`
}

type TimerResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	AppointmentID string  `json:"appointment_id"`
	StartTime     string  `json:"start_time"`
	EndTime       *string `json:"end_time,omitempty"`
	Active        bool    `json:"active"`
}

type TimeLogResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	AppointmentID string  `json:"appointment_id"`
	Date          string  `json:"date"`
	Hours         float64 `json:"hours"`
	Description   string  `json:"description"`
	Status        string  `json:"status"`
	Billable      bool    `json:"billable"`
}

// StopTimerResponse returns both sides of the conversion so clients can show
// the closed timer and the log it produced.
type StopTimerResponse struct {
	Timer   TimerResponse   `json:"timer"`
	TimeLog TimeLogResponse `json:"time_log"`
}
