package appointment

type CreateAppointmentRequest struct {
	CustomerID          string  `json:"customer_id" binding:"required"`
	ServiceType         string  `json:"service_type" binding:"required"`
	Vehicle             string  `json:"vehicle" binding:"required"`
	Date                string  `json:"date" binding:"required"`
	Time                string  `json:"time" binding:"required"`
	Status              string  `json:"status"`
	Notes               *string `json:"notes"`
	TechnicianName      string  `json:"technician_name"`
	DueDate             *string `json:"due_date"`
	SpecialInstructions *string `json:"special_instructions"`
	EstimatedHours      float64 `json:"estimated_hours"`
}

// UpdateAppointmentRequest carries partial-update semantics: nil fields are
// left untouched, they are never cleared.
type UpdateAppointmentRequest struct {
	ServiceType         *string  `json:"service_type"`
	Vehicle             *string  `json:"vehicle"`
	Date                *string  `json:"date"`
	Time                *string  `json:"time"`
	Status              *string  `json:"status"`
	Notes               *string  `json:"notes"`
	Progress            *int     `json:"progress"`
	TechnicianName      *string  `json:"technician_name"`
	DueDate             *string  `json:"due_date"`
	SpecialInstructions *string  `json:"special_instructions"`
	EstimatedHours      *float64 `json:"estimated_hours"`
}

type AppointmentResponse struct {
	ID                  string  `json:"id"`
	CustomerID          string  `json:"customer_id"`
	CustomerName        string  `json:"customer_name,omitempty"`
	ServiceType         string  `json:"service_type"`
	Vehicle             string  `json:"vehicle"`
	Date                string  `json:"date"`
	Time                string  `json:"time"`
	Status              string  `json:"status"`
	Notes               *string `json:"notes,omitempty"`
	Progress            int     `json:"progress"`
	DueDate             *string `json:"due_date,omitempty"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`
	TechnicianID        string  `json:"technician_id,omitempty"`
	TechnicianName      string  `json:"technician_name,omitempty"`
	EstimatedHours      float64 `json:"estimated_hours"`
	ActualHours         float64 `json:"actual_hours"`
	CreatedAt           string  `json:"created_at,omitempty"`
}

type AvailabilityResponse struct {
	Date                 string   `json:"date"`
	AvailableSlots       []string `json:"available_slots"`
	AvailableTechnicians []string `json:"available_technicians"`
}
