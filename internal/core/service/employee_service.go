package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/staffroom/attendance-system/internal/core/domain"
	"github.com/staffroom/attendance-system/internal/core/ports"
)

// EmployeeService handles account listing, profile updates, and deletion.
type EmployeeService struct {
	repo ports.EmployeeRepository
	log  zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, log zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, log: log}
}

// List returns all employees. Unless unfiltered is set, Admin and HR accounts
// are screened out of the listing.
func (s *EmployeeService) List(ctx context.Context, unfiltered bool) ([]domain.Employee, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if unfiltered {
		return employees, nil
	}

	visible := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		if e.Designation == domain.DesignationAdmin || e.Designation == domain.DesignationHR {
			continue
		}
		visible = append(visible, e)
	}
	return visible, nil
}

// Update applies a partial update. Designation changes are gated: Manager/HR
// only by Admin, Employee only by HR, Admin never, and never one's own role.
func (s *EmployeeService) Update(ctx context.Context, updater *domain.Employee, id string, upd ports.EmployeeUpdate) (*domain.Employee, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if upd.Designation != nil {
		next := *upd.Designation
		if (next == domain.DesignationManager || next == domain.DesignationHR) && updater.Designation != domain.DesignationAdmin {
			return nil, fmt.Errorf("%w: only Admin can update Manager or HR roles", domain.ErrForbidden)
		}
		if next == domain.DesignationEmployee && updater.Designation != domain.DesignationHR {
			return nil, fmt.Errorf("%w: only HR can update Employee accounts", domain.ErrForbidden)
		}
		if next == domain.DesignationAdmin {
			return nil, fmt.Errorf("%w: admin role cannot be updated", domain.ErrForbidden)
		}
		if id == updater.ID && next != updater.Designation {
			return nil, fmt.Errorf("%w: you cannot change your own role", domain.ErrForbidden)
		}
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("employee_id", id).Str("updated_by", updater.ID).Msg("employee updated")
	return updated, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("employee_id", id).Msg("employee deleted")
	return nil
}
