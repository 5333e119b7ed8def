package events

import "time"

const (
	// AppointmentAdminTopic is the admin-wide broadcast channel: every
	// appointment create/update lands here.
	AppointmentAdminTopic = "autocare.appointments.admin.v1"

	// CustomerNotifyTopic carries per-customer updates, keyed by customer id
	// so one customer's notifications stay ordered.
	CustomerNotifyTopic = "autocare.customers.notify.v1"
)

// AppointmentSnapshot is the public field set pushed with every appointment
// event. It mirrors the API response shape, not the storage row.
type AppointmentSnapshot struct {
	ID             string  `json:"id"`
	CustomerID     string  `json:"customer_id"`
	ServiceType    string  `json:"service_type"`
	Vehicle        string  `json:"vehicle"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Status         string  `json:"status"`
	Progress       int     `json:"progress"`
	TechnicianID   string  `json:"technician_id,omitempty"`
	TechnicianName string  `json:"technician_name,omitempty"`
	EstimatedHours float64 `json:"estimated_hours"`
	ActualHours    float64 `json:"actual_hours"`
}

type AppointmentEvent struct {
	EventType   string              `json:"event_type"` // appointment_created | appointment_updated
	RequestID   string              `json:"request_id,omitempty"`
	Appointment AppointmentSnapshot `json:"appointment"`
	OccurredAt  time.Time           `json:"occurred_at"`
}
