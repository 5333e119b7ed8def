package jobassignment

type CreateAssignmentRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	EmployeeID  string  `json:"employee_id" binding:"required"`
	DueDate     *string `json:"due_date"`
}

// UpdateAssignmentRequest is partial: nil fields stay untouched.
type UpdateAssignmentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	EmployeeID  *string `json:"employee_id"`
	Status      *string `json:"status"`
	DueDate     *string `json:"due_date"`
}

type AssignmentResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Status       string  `json:"status"`
	DueDate      *string `json:"due_date,omitempty"`
	CreatedAt    string  `json:"created_at,omitempty"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}
