package employee

type CreateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	EmployeeNumber   string `json:"employee_number"`
	Specialization   string `json:"specialization"`
	EmploymentStatus string `json:"employment_status"`
	HireDate         string `json:"hire_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	EmployeeNumber   string `json:"employee_number" binding:"required"`
	Specialization   string `json:"specialization"`
	EmploymentStatus string `json:"employment_status" binding:"required"`
	HireDate         string `json:"hire_date" binding:"required"`
}

type EmployeeResponse struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	EmployeeNumber   string `json:"employee_number"`
	Specialization   string `json:"specialization,omitempty"`
	EmploymentStatus string `json:"employment_status"`
	HireDate         string `json:"hire_date"`
}
