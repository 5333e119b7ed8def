package events

import "time"

// WorkloadRefreshTopic receives refresh pings whenever logged hours change,
// so dashboards re-pull the affected technician's snapshot.
const WorkloadRefreshTopic = "autocare.workload.refresh.v1"

type WorkloadRefreshEvent struct {
	EventType     string    `json:"event_type"` // workload_refresh
	RequestID     string    `json:"request_id,omitempty"`
	EmployeeID    string    `json:"employee_id"`
	AppointmentID string    `json:"appointment_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
