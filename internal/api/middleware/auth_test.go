package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/staffroom/attendance-system/internal/core/domain"
)

type stubVerifier struct {
	employee *domain.Employee
	err      error
}

func (v *stubVerifier) VerifyToken(_ context.Context, _ string) (*domain.Employee, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.employee, nil
}

func newAuthContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthenticate_ValidToken(t *testing.T) {
	verifier := &stubVerifier{employee: &domain.Employee{ID: "emp-1", Designation: domain.DesignationDeveloper}}
	c, rec := newAuthContext("Bearer token123")

	called := false
	handler := Authenticate(verifier)(func(c echo.Context) error {
		called = true
		employee := Identity(c)
		if employee == nil || employee.ID != "emp-1" {
			t.Fatalf("identity not bound: %+v", employee)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	verifier := &stubVerifier{employee: &domain.Employee{ID: "emp-1"}}
	c, _ := newAuthContext("")

	handler := Authenticate(verifier)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestAuthenticate_BadHeaderFormat(t *testing.T) {
	verifier := &stubVerifier{employee: &domain.Employee{ID: "emp-1"}}

	for _, header := range []string{"token123", "Basic abc"} {
		c, _ := newAuthContext(header)
		handler := Authenticate(verifier)(func(c echo.Context) error {
			t.Fatalf("should not reach next for %q", header)
			return nil
		})
		if err := handler(c); !errors.Is(err, domain.ErrMissingToken) {
			t.Fatalf("header %q: expected ErrMissingToken, got %v", header, err)
		}
	}
}

func TestAuthenticate_LowercaseBearer(t *testing.T) {
	verifier := &stubVerifier{employee: &domain.Employee{ID: "emp-1", Designation: domain.DesignationQA}}
	c, _ := newAuthContext("bearer token123")

	called := false
	handler := Authenticate(verifier)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("lowercase bearer scheme should be accepted")
	}
}

func TestAuthenticate_VerifierError(t *testing.T) {
	verifier := &stubVerifier{err: domain.ErrExpiredToken}
	c, _ := newAuthContext("Bearer token123")

	handler := Authenticate(verifier)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestAuthenticateStaff_RejectsPlainEmployee(t *testing.T) {
	verifier := &stubVerifier{employee: &domain.Employee{ID: "emp-1", Designation: domain.DesignationEmployee}}
	c, _ := newAuthContext("Bearer token123")

	handler := AuthenticateStaff(verifier)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrNotStaff) {
		t.Fatalf("expected ErrNotStaff, got %v", err)
	}
}

func TestAuthenticateStaff_AllowsStaff(t *testing.T) {
	verifier := &stubVerifier{employee: &domain.Employee{ID: "emp-1", Designation: domain.DesignationHR}}
	c, rec := newAuthContext("Bearer token123")

	handler := AuthenticateStaff(verifier)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireStaff(t *testing.T) {
	e := echo.New()

	for _, tc := range []struct {
		designation domain.Designation
		allow       bool
	}{
		{domain.DesignationDeveloper, true},
		{domain.DesignationAdmin, true},
		{domain.DesignationEmployee, false},
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(identityKey, &domain.Employee{ID: "emp-1", Designation: tc.designation})

		handler := RequireStaff()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		err := handler(c)
		if tc.allow && err != nil {
			t.Fatalf("%s: expected pass, got %v", tc.designation, err)
		}
		if !tc.allow && !errors.Is(err, domain.ErrNotStaff) {
			t.Fatalf("%s: expected ErrNotStaff, got %v", tc.designation, err)
		}
	}
}

func TestRequireStaff_NoIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := RequireStaff()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); !errors.Is(err, domain.ErrNotStaff) {
		t.Fatalf("expected ErrNotStaff, got %v", err)
	}
}
