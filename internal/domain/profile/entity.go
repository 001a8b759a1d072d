package profile

import "time"

type Profile struct {
	ID         string
	UserID     string
	FullName   string
	Email      string
	EmployeeID *string
	Department *string
	AvatarURL  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DisplayName is the subset of a profile joined onto team attendance rows.
type DisplayName struct {
	FullName   string `json:"full_name"`
	EmployeeID string `json:"employee_id"`
}

// Display returns the join fields, with empty strings for a nil profile.
func (p *Profile) Display() DisplayName {
	if p == nil {
		return DisplayName{}
	}
	d := DisplayName{FullName: p.FullName}
	if p.EmployeeID != nil {
		d.EmployeeID = *p.EmployeeID
	}
	return d
}
