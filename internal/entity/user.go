package entity

import "time"

type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleManager   UserRole = "MANAGER"
	RoleSalesLead UserRole = "SALES_LEAD"
	RoleEmployee  UserRole = "EMPLOYEE"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSalesLead, RoleEmployee:
		return true
	}
	return false
}

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULL_TIME"
	EmploymentPartTime   EmploymentType = "PART_TIME"
	EmploymentContractor EmploymentType = "CONTRACTOR"
)

func (e EmploymentType) IsValid() bool {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContractor:
		return true
	}
	return false
}

// UserState is the explicit account lifecycle. Deactivation is the only exit:
// user rows are never hard-deleted because time entries and assignments hang
// off them.
type UserState string

const (
	UserStateActive      UserState = "ACTIVE"
	UserStateDeactivated UserState = "DEACTIVATED"
)

func (s UserState) IsValid() bool {
	return s == UserStateActive || s == UserStateDeactivated
}

// User is a staff record. ExternalID is the identity-provider subject the auth
// middleware resolves tokens against.
type User struct {
	ID             string         `json:"id"`
	ExternalID     string         `json:"external_id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone,omitempty"`
	Role           UserRole       `json:"role"`
	EmploymentType EmploymentType `json:"employment_type"`
	JobTitle       string         `json:"job_title,omitempty"`
	HourlyRate     *float64       `json:"hourly_rate,omitempty"`
	State          UserState      `json:"state"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (u *User) IsActive() bool {
	return u.State == UserStateActive
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) Initials() string {
	var b []byte
	if u.FirstName != "" {
		b = append(b, upperByte(u.FirstName[0]))
	}
	if u.LastName != "" {
		b = append(b, upperByte(u.LastName[0]))
	}
	return string(b)
}

func upperByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
