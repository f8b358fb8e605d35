package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/staffroom/attendance-system/internal/core/domain"
)

func contextWithIdentity(designation domain.Designation) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(identityKey, &domain.Employee{ID: "emp-1", Designation: designation})
	return c
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole(domain.DesignationHR, domain.DesignationAdmin)

	for _, tc := range []struct {
		designation domain.Designation
		allow       bool
	}{
		{domain.DesignationHR, true},
		{domain.DesignationAdmin, true},
		{domain.DesignationManager, false},
		{domain.DesignationDeveloper, false},
	} {
		c := contextWithIdentity(tc.designation)
		handler := mw(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		err := handler(c)
		if tc.allow && err != nil {
			t.Fatalf("%s: expected pass, got %v", tc.designation, err)
		}
		if !tc.allow && !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("%s: expected ErrForbidden, got %v", tc.designation, err)
		}
	}
}

func TestRequireRole_CaseSensitive(t *testing.T) {
	mw := RequireRole(domain.DesignationAdmin)
	c := contextWithIdentity(domain.Designation("admin"))

	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for lowercase role, got %v", err)
	}
}

func TestRequireRole_NoIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := RequireRole(domain.DesignationAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestForbidRole(t *testing.T) {
	mw := ForbidRole(domain.DesignationManager, domain.DesignationHR)

	for _, tc := range []struct {
		designation domain.Designation
		allow       bool
	}{
		{domain.DesignationManager, false},
		{domain.DesignationHR, false},
		{domain.DesignationAdmin, true},
		{domain.DesignationDeveloper, true},
	} {
		c := contextWithIdentity(tc.designation)
		handler := mw(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		err := handler(c)
		if tc.allow && err != nil {
			t.Fatalf("%s: expected pass, got %v", tc.designation, err)
		}
		if !tc.allow && !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("%s: expected ErrForbidden, got %v", tc.designation, err)
		}
	}
}
