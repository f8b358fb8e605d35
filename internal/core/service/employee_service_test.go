package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/staffroom/attendance-system/internal/core/domain"
	"github.com/staffroom/attendance-system/internal/core/ports"
)

func TestEmployeeService_List_ScreensPrivilegedRoles(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo, zerolog.Nop())

	for _, d := range []domain.Designation{
		domain.DesignationDeveloper, domain.DesignationAdmin,
		domain.DesignationHR, domain.DesignationManager,
	} {
		if _, err := repo.Create(context.Background(), &domain.Employee{
			Name:        string(d),
			Email:       string(d) + "@example.com",
			Designation: d,
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	visible, err := svc.List(context.Background(), false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible employees, got %d", len(visible))
	}
	for _, e := range visible {
		if e.Designation == domain.DesignationAdmin || e.Designation == domain.DesignationHR {
			t.Fatalf("privileged role leaked into listing: %s", e.Designation)
		}
	}

	all, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("unfiltered list failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 employees unfiltered, got %d", len(all))
	}
}

func TestEmployeeService_Update_RoleGates(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo, zerolog.Nop())

	target, err := repo.Create(context.Background(), &domain.Employee{
		Name: "Target", Email: "target@example.com", Designation: domain.DesignationDeveloper,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	admin := &domain.Employee{ID: "admin-1", Designation: domain.DesignationAdmin}
	hr := &domain.Employee{ID: "hr-1", Designation: domain.DesignationHR}

	manager := domain.DesignationManager
	if _, err := svc.Update(context.Background(), hr, target.ID, ports.EmployeeUpdate{Designation: &manager}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for HR promoting to Manager, got %v", err)
	}
	if _, err := svc.Update(context.Background(), admin, target.ID, ports.EmployeeUpdate{Designation: &manager}); err != nil {
		t.Fatalf("admin promotion failed: %v", err)
	}

	adminRole := domain.DesignationAdmin
	if _, err := svc.Update(context.Background(), admin, target.ID, ports.EmployeeUpdate{Designation: &adminRole}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for Admin promotion, got %v", err)
	}

	plain := domain.DesignationEmployee
	if _, err := svc.Update(context.Background(), admin, target.ID, ports.EmployeeUpdate{Designation: &plain}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for Admin demoting to Employee, got %v", err)
	}
	if _, err := svc.Update(context.Background(), hr, target.ID, ports.EmployeeUpdate{Designation: &plain}); err != nil {
		t.Fatalf("hr demotion failed: %v", err)
	}
}

func TestEmployeeService_Update_OwnRole(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo, zerolog.Nop())

	self, err := repo.Create(context.Background(), &domain.Employee{
		Name: "Self", Email: "self@example.com", Designation: domain.DesignationAdmin,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	manager := domain.DesignationManager
	if _, err := svc.Update(context.Background(), self, self.ID, ports.EmployeeUpdate{Designation: &manager}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for own role change, got %v", err)
	}

	// Non-role fields on one's own record are fine.
	name := "Renamed"
	updated, err := svc.Update(context.Background(), self, self.ID, ports.EmployeeUpdate{Name: &name})
	if err != nil {
		t.Fatalf("own profile update failed: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("name not updated: %s", updated.Name)
	}
}

func TestEmployeeService_Update_Partial(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo, zerolog.Nop())

	target, err := repo.Create(context.Background(), &domain.Employee{
		Name: "Target", Email: "target@example.com",
		Department: "Engineering", Designation: domain.DesignationDeveloper,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	admin := &domain.Employee{ID: "admin-1", Designation: domain.DesignationAdmin}
	dept := "Support"
	updated, err := svc.Update(context.Background(), admin, target.ID, ports.EmployeeUpdate{Department: &dept})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Department != "Support" {
		t.Fatalf("department not updated: %s", updated.Department)
	}
	if updated.Name != "Target" || updated.Email != "target@example.com" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestEmployeeService_Delete(t *testing.T) {
	repo := newStubEmployeeRepo()
	svc := NewEmployeeService(repo, zerolog.Nop())

	target, err := repo.Create(context.Background(), &domain.Employee{
		Name: "Target", Email: "target@example.com", Designation: domain.DesignationDeveloper,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.Delete(context.Background(), target.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), target.ID); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}
