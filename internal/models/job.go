package models

// EmploymentType is the contract kind of a job posting.
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentPartTime EmploymentType = "part-time"
	EmploymentContract EmploymentType = "contract"
	EmploymentIntern   EmploymentType = "intern"
)

// Job is a posting owned by an employer. Postings are create-only: no update
// or delete exists in the current product scope.
type Job struct {
	ID          string   `json:"id"`
	EmployerID  string   `json:"employerId"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Skills      []string `json:"skills"`
	// Salary bounds are both optional and not cross-checked against each
	// other, matching the product's loose input rules.
	SalaryMin      *float64       `json:"salaryMin,omitempty" validate:"omitempty,gte=0"`
	SalaryMax      *float64       `json:"salaryMax,omitempty" validate:"omitempty,gte=0"`
	Location       string         `json:"location"`
	EmploymentType EmploymentType `json:"employmentType" validate:"required,oneof=full-time part-time contract intern"`
	PostedAt       string         `json:"postedAt"`
}
