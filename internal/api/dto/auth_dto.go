package dto

import (
	"time"

	"github.com/tickety/tickety-server/internal/domain"
)

// CustomerRegisterRequest payload for new customers.
type CustomerRegisterRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ContactNumber string `json:"contactNumber"`
}

// AssigneeRegisterRequest payload; assignees additionally carry an address.
type AssigneeRegisterRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
}

// LoginRequest payload for either principal kind.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse bundles the issued token with basic identity.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      any       `json:"user"`
}

// CustomerResponse is the public view of a customer.
type CustomerResponse struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contactNumber"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AssigneeResponse is the public view of an assignee.
type AssigneeResponse struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contactNumber"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CustomerUpdateRequest payload for profile update; password optional.
type CustomerUpdateRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Password      string `json:"password"`
}

// AssigneeUpdateRequest payload for profile update; password optional.
type AssigneeUpdateRequest struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
	Password      string `json:"password"`
}

// ForgotPasswordRequest payload.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest payload.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// FromCustomer maps the domain model to its response shape.
func FromCustomer(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            customer.ID,
		FullName:      customer.FullName,
		Email:         customer.Email,
		ContactNumber: customer.ContactNumber,
		CreatedAt:     customer.CreatedAt,
	}
}

// FromAssignee maps the domain model to its response shape.
func FromAssignee(assignee *domain.Assignee) AssigneeResponse {
	return AssigneeResponse{
		ID:            assignee.ID,
		FullName:      assignee.FullName,
		Email:         assignee.Email,
		ContactNumber: assignee.ContactNumber,
		Address:       assignee.Address,
		CreatedAt:     assignee.CreatedAt,
	}
}
