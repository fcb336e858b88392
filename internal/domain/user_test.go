package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  Jane Doe ", " Jane@Example.com ", "password123", RoleCustomer)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Name != "Jane Doe" {
		t.Errorf("Expected trimmed name, got %q", user.Name)
	}

	if user.Email != "jane@example.com" {
		t.Errorf("Expected normalized email, got %q", user.Email)
	}

	if user.Role != RoleCustomer {
		t.Errorf("Expected role %s, got %s", RoleCustomer, user.Role)
	}

	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		role     Role
		wantErr  error
	}{
		{"empty name", "", "a@example.com", "password123", RoleCustomer, ErrEmptyName},
		{"empty email", "A", "", "password123", RoleCustomer, ErrEmptyEmail},
		{"no at sign", "A", "invalidemail", "password123", RoleCustomer, ErrInvalidEmail},
		{"no dot in domain", "A", "a@localhost", "password123", RoleCustomer, ErrInvalidEmail},
		{"display name", "A", "A <a@example.com>", "password123", RoleCustomer, ErrInvalidEmail},
		{"short password", "A", "a@example.com", "short", RoleCustomer, ErrPasswordTooShort},
		{"long password", "A", "a@example.com", strings.Repeat("x", 73), RoleCustomer, ErrPasswordTooLong},
		{"empty password", "A", "a@example.com", "", RoleCustomer, ErrEmptyPassword},
		{"unknown role", "A", "a@example.com", "password123", Role("owner"), ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.userName, tt.email, tt.password, tt.role)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, ErrValidation) && !errors.Is(err, ErrInvalidID) {
				t.Errorf("Expected a validation error, got %v", err)
			}
		})
	}
}

func TestUserValidateHashedPassword(t *testing.T) {
	user := User{
		ID:             uuid.New(),
		Name:           "Admin",
		Email:          "admin@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		Role:           RoleAdmin,
	}

	if err := user.Validate(); err != nil {
		t.Errorf("Expected stored user to validate, got %v", err)
	}

	user.ID = uuid.Nil
	if err := user.Validate(); !errors.Is(err, ErrEmptyUserID) {
		t.Errorf("Expected %v, got %v", ErrEmptyUserID, err)
	}
}

func TestRoleSelfAssignable(t *testing.T) {
	if !RoleCustomer.SelfAssignable() || !RoleProvider.SelfAssignable() {
		t.Error("customer and provider must be self-assignable")
	}
	if RoleAdmin.SelfAssignable() {
		t.Error("admin must not be self-assignable")
	}
}
