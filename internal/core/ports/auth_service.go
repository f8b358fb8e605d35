package ports

import (
	"context"
	"time"

	"github.com/staffroom/attendance-system/internal/core/domain"
)

// SignupInput is the payload for privileged account creation.
type SignupInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Department      string
	Designation     domain.Designation
	JoiningDate     time.Time
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token       string
	Designation domain.Designation
	EmployeeID  string
}

// AuthService implements login, privileged signup, and password rotation.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Signup creates an account on behalf of creator, enforcing the
	// role-creation rules: Manager/HR only by Admin, Employee only by HR,
	// Admin never assignable through signup.
	Signup(ctx context.Context, creator *domain.Employee, in SignupInput) (*domain.Employee, string, error)
	UpdatePassword(ctx context.Context, email, current, next, confirm string) error
}

// TokenVerifier checks a bearer token and resolves the acting identity.
// Implemented by AuthService; consumed by the auth middleware.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.Employee, error)
}
