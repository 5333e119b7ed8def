package workload

// Workload statuses derived from the classifier thresholds.
const (
	StatusAvailable  = "AVAILABLE"
	StatusBusy       = "BUSY"
	StatusOverloaded = "OVERLOADED"
)

// TaskSummary is the compact appointment view embedded in a snapshot.
// Priority is fixed until appointments carry their own priority field.
type TaskSummary struct {
	AppointmentID  string  `json:"appointment_id"`
	ServiceType    string  `json:"service_type"`
	Vehicle        string  `json:"vehicle"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Status         string  `json:"status"`
	Priority       string  `json:"priority"`
	EstimatedHours float64 `json:"estimated_hours"`
}

type Snapshot struct {
	EmployeeID         string        `json:"employee_id"`
	EmployeeName       string        `json:"employee_name"`
	Specialization     string        `json:"specialization,omitempty"`
	Status             string        `json:"status"`
	Utilization        float64       `json:"utilization"`
	WeekHours          float64       `json:"week_hours"`
	MonthHours         float64       `json:"month_hours"`
	ActiveAppointments int           `json:"active_appointments"`
	ActiveTasks        []TaskSummary `json:"active_tasks"`
	UpcomingTasks      []TaskSummary `json:"upcoming_tasks"`
	GeneratedAt        string        `json:"generated_at"`
}

// TeamSnapshot is the admin view across every active technician.
type TeamSnapshot struct {
	Members     []Snapshot `json:"members"`
	Available   int        `json:"available"`
	Busy        int        `json:"busy"`
	Overloaded  int        `json:"overloaded"`
	GeneratedAt string     `json:"generated_at"`
}
