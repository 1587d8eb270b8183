//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"unicode/utf8"

	domainauth "github.com/mocksmith/adminctl/internal/domain/auth"
)

const (
	minUserNameLen = 3
	maxUserNameLen = 50
	minUserPassLen = 6
	maxUserPassLen = 100
)

// CreateUserRequest represents parameters for an administrator to create a
// user account directly (as opposed to self-registration).
type CreateUserRequest struct {
	Name     string                `json:"name"`
	Password string                `json:"password"`
	Email    string                `json:"email,omitempty"`
	Status   domainauth.UserStatus `json:"status,omitempty"`
	Role     domainauth.Role       `json:"role,omitempty"`
}

// UpdateUserRequest represents parameters to update a user account. All
// fields are optional; an empty password means "leave unchanged".
type UpdateUserRequest struct {
	Name     *string                `json:"name,omitempty"`
	Password *string                `json:"password,omitempty"`
	Email    *string                `json:"email,omitempty"`
	Status   *domainauth.UserStatus `json:"status,omitempty"`
	Role     *domainauth.Role       `json:"role,omitempty"`
}

func validateUserName(name string) error {
	trimmed := strings.TrimSpace(name)
	if utf8.RuneCountInString(trimmed) < minUserNameLen {
		return errors.New("username must be at least 3 characters")
	}
	if utf8.RuneCountInString(trimmed) > maxUserNameLen {
		return errors.New("username cannot exceed 50 characters")
	}
	return nil
}

func validateUserPassword(password string) error {
	if len(password) < minUserPassLen {
		return errors.New("password must be at least 6 characters")
	}
	if len(password) > maxUserPassLen {
		return errors.New("password cannot exceed 100 characters")
	}
	return nil
}

// validateUserEmail applies the same loose shape check the original form
// used; real deliverability is the server's problem.
func validateUserEmail(email string) error {
	if email == "" {
		return nil
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return errors.New("invalid email")
	}
	return nil
}

// Validate validates CreateUserRequest and applies server-side defaults
// (status enabled, role user) so the payload is self-describing.
func (r *CreateUserRequest) Validate() error {
	if err := validateUserName(r.Name); err != nil {
		return err
	}
	if err := validateUserPassword(r.Password); err != nil {
		return err
	}
	if err := validateUserEmail(r.Email); err != nil {
		return err
	}
	if r.Status == "" {
		r.Status = domainauth.UserStatusEnabled
	}
	if !r.Status.Valid() {
		return errors.New("invalid status")
	}
	if r.Role == "" {
		r.Role = domainauth.RoleUser
	}
	if !r.Role.Valid() {
		return errors.New("invalid role")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateUserRequest.
func (r *UpdateUserRequest) HasUpdates() bool {
	return r.Name != nil || r.Password != nil || r.Email != nil || r.Status != nil || r.Role != nil
}

// Validate validates UpdateUserRequest, ensuring at least one field is set
// and values are sane. An empty password pointer is dropped rather than
// rejected, matching the edit form's "blank keeps the old password" rule.
func (r *UpdateUserRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		if err := validateUserName(*r.Name); err != nil {
			return err
		}
	}
	if r.Password != nil {
		if *r.Password == "" {
			r.Password = nil
		} else if err := validateUserPassword(*r.Password); err != nil {
			return err
		}
	}
	if r.Email != nil {
		if err := validateUserEmail(*r.Email); err != nil {
			return err
		}
	}
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("invalid status")
	}
	if r.Role != nil && !r.Role.Valid() {
		return errors.New("invalid role")
	}
	return nil
}
