package ports

import (
	"context"

	"github.com/staffroom/attendance-system/internal/core/domain"
)

// EmployeeService covers account listing, profile updates, and deletion.
type EmployeeService interface {
	// List returns every employee when unfiltered is true; otherwise Admin
	// and HR rows are screened out of the result.
	List(ctx context.Context, unfiltered bool) ([]domain.Employee, error)
	// Update applies a partial update, enforcing designation-change rules
	// against the acting updater.
	Update(ctx context.Context, updater *domain.Employee, id string, upd EmployeeUpdate) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}
