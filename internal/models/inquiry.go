package models

import (
	"time"
)

// EmploymentStatus describes an applicant's employment situation.
type EmploymentStatus string

const (
	EmploymentStatusEmployed     EmploymentStatus = "employed"
	EmploymentStatusSelfEmployed EmploymentStatus = "self_employed"
	EmploymentStatusStudent      EmploymentStatus = "student"
	EmploymentStatusRetired      EmploymentStatus = "retired"
	EmploymentStatusOther        EmploymentStatus = "other"
)

// InquiryStatus is the review state of an application, managed by the backend.
type InquiryStatus string

const (
	InquiryStatusNew       InquiryStatus = "new"
	InquiryStatusReviewing InquiryStatus = "reviewing"
	InquiryStatusApproved  InquiryStatus = "approved"
	InquiryStatusRejected  InquiryStatus = "rejected"
)

// TenantInquiry represents a submitted tenant application. This service
// creates an inquiry exactly once per submission and otherwise only reads
// them for the dashboard; status transitions belong to the backend.
type TenantInquiry struct {
	ID                string           `json:"id"`
	PropertyID        string           `json:"property_id"`
	FullName          string           `json:"full_name"`
	Email             string           `json:"email"`
	Phone             string           `json:"phone"`
	CurrentAddress    string           `json:"current_address,omitempty"`
	EmploymentStatus  EmploymentStatus `json:"employment_status"`
	AnnualIncome      *float64         `json:"annual_income,omitempty"`
	MoveInDate        *time.Time       `json:"move_in_date,omitempty"`
	NumberOfOccupants int              `json:"number_of_occupants"`
	HasPets           bool             `json:"has_pets"`
	AdditionalNotes   string           `json:"additional_notes,omitempty"`
	Status            InquiryStatus    `json:"status"`
	CreatedDate       time.Time        `json:"created_date"`
}

// InquiryPayload is the outbound shape for creating a TenantInquiry.
// PropertyID is injected from the application's selected property and is
// deliberately not validated here; the backend owns referential integrity.
type InquiryPayload struct {
	PropertyID        string           `json:"property_id"`
	FullName          string           `json:"full_name"`
	Email             string           `json:"email"`
	Phone             string           `json:"phone"`
	CurrentAddress    string           `json:"current_address,omitempty"`
	EmploymentStatus  EmploymentStatus `json:"employment_status"`
	AnnualIncome      *float64         `json:"annual_income,omitempty"`
	MoveInDate        *time.Time       `json:"move_in_date,omitempty"`
	NumberOfOccupants int              `json:"number_of_occupants"`
	HasPets           bool             `json:"has_pets"`
	AdditionalNotes   string           `json:"additional_notes,omitempty"`
}
