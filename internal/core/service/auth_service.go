package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffroom/attendance-system/internal/core/domain"
	"github.com/staffroom/attendance-system/internal/core/ports"
)

// LoginLimiter throttles repeated failed logins per email.
type LoginLimiter interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements login, privileged signup, password rotation, and
// bearer-token verification.
type AuthService struct {
	repo      ports.EmployeeRepository
	limiter   LoginLimiter
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.EmployeeRepository, limiter LoginLimiter, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, limiter: limiter, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		blocked, err := s.limiter.TooManyFailures(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("login limiter check failed, allowing attempt")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	employee, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)) != nil {
		if s.limiter != nil {
			if err := s.limiter.RecordFailure(ctx, email); err != nil {
				s.log.Warn().Err(err).Str("email", email).Msg("failed to record login failure")
			}
		}
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("failed to reset login limiter")
		}
	}

	if err := s.repo.SetLastLogin(ctx, employee.ID, time.Now()); err != nil {
		s.log.Warn().Err(err).Str("employee_id", employee.ID).Msg("failed to record last login")
	}

	token, err := s.signToken(employee.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("employee_id", employee.ID).Str("designation", string(employee.Designation)).Msg("employee logged in")

	return &ports.LoginResult{
		Token:       token,
		Designation: employee.Designation,
		EmployeeID:  employee.ID,
	}, nil
}

func (s *AuthService) Signup(ctx context.Context, creator *domain.Employee, in ports.SignupInput) (*domain.Employee, string, error) {
	if creator == nil {
		return nil, "", domain.ErrMissingToken
	}
	if in.Password != in.ConfirmPassword {
		return nil, "", domain.ErrPasswordMismatch
	}
	if !in.Designation.In(domain.AssignableDesignations) {
		return nil, "", domain.ErrInvalidDesignation
	}

	// Role-creation rules: Manager and HR accounts are Admin-only, Admin is
	// never assignable through signup, plain Employee accounts are HR-only.
	if in.Designation == domain.DesignationManager || in.Designation == domain.DesignationHR {
		if creator.Designation != domain.DesignationAdmin {
			return nil, "", fmt.Errorf("%w: only Admin can create Manager or HR roles", domain.ErrForbidden)
		}
	}
	if in.Designation == domain.DesignationAdmin {
		return nil, "", fmt.Errorf("%w: you cannot create Admin accounts through signup", domain.ErrForbidden)
	}
	if in.Designation == domain.DesignationEmployee && creator.Designation != domain.DesignationHR {
		return nil, "", fmt.Errorf("%w: only HR can create Employee accounts", domain.ErrForbidden)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	employee := &domain.Employee{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		EmployeeCode: generateEmployeeCode(now),
		Department:   in.Department,
		Designation:  in.Designation,
		Status:       domain.StatusActive,
		JoiningDate:  in.JoiningDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, employee)
	if err != nil {
		return nil, "", err
	}

	token, err := s.signToken(created.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("employee_id", created.ID).Str("designation", string(created.Designation)).
		Str("created_by", creator.ID).Msg("employee account created")

	return created, token, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, email, current, next, confirm string) error {
	if email == "" {
		return domain.ErrInvalidCredentials
	}

	employee, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}
	if next != confirm {
		return domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// Stamping passwordChangedAt invalidates every token issued before now.
	if err := s.repo.UpdatePassword(ctx, employee.ID, string(hash), time.Now()); err != nil {
		return err
	}

	s.log.Info().Str("employee_id", employee.ID).Msg("password updated")
	return nil
}

// VerifyToken validates signature and expiry, loads the identity, and rejects
// tokens issued before the identity's last password change.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.Employee, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, domain.ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return nil, domain.ErrInvalidToken
	}

	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return nil, domain.ErrIdentityGone
		}
		return nil, err
	}

	issuedAt, err := claims.GetIssuedAt()
	if err != nil || issuedAt == nil {
		return nil, domain.ErrInvalidToken
	}
	if employee.PasswordChangedAfter(issuedAt.Time) {
		return nil, domain.ErrStalePassword
	}

	return employee, nil
}

func (s *AuthService) signToken(id string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  id,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateEmployeeCode returns a display code in the format EMP-YYYY-NNNN.
func generateEmployeeCode(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return fmt.Sprintf("EMP-%d-%04d", now.Year(), now.UnixNano()%9000+1000)
	}
	return fmt.Sprintf("EMP-%d-%04d", now.Year(), n.Int64()+1000)
}
