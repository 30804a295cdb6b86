package pendingaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/models"
)

// ErrStorageConflict is returned by Create when a pending-record unique
// index rejects the insert. The returned error is one of the two below.
var ErrStorageConflict = errors.New("pending action conflicts with an existing pending action")

var (
	// ErrInFlightConflict: the same action on the same resource is pending.
	ErrInFlightConflict = fmt.Errorf("%w: same action already pending for the resource", ErrStorageConflict)

	// ErrUniqueKeyConflict: another pending action claims the same unique key.
	ErrUniqueKeyConflict = fmt.Errorf("%w: unique key already claimed", ErrStorageConflict)
)

type Filter struct {
	RequestedBy  *uint
	ResourceType resource.Type
	ResourceID   *uint
	ActionType   ActionType
	Status       Status
}

type Repository interface {
	// -------- Create --------
	Create(
		ctx context.Context,
		pa *models.PendingAction,
	) error

	// -------- Read --------
	GetByID(
		ctx context.Context,
		id uint,
	) (*models.PendingAction, error)

	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(
		ctx context.Context,
		id uint,
	) (*models.PendingAction, error)

	List(
		ctx context.Context,
		f Filter,
		page int,
		limit int,
	) ([]models.PendingAction, int64, error)

	CountByStatus(
		ctx context.Context,
		requestedBy uint,
	) (map[Status]int64, error)

	// -------- Conflicts --------
	FindInFlight(
		ctx context.Context,
		resourceType resource.Type,
		resourceID uint,
		action ActionType,
	) (*models.PendingAction, error)

	// FindPendingByUniqueKey ignores pending actions targeting excludeResourceID.
	FindPendingByUniqueKey(
		ctx context.Context,
		resourceType resource.Type,
		key string,
		excludeResourceID uint,
	) (*models.PendingAction, error)

	// -------- State change --------
	// Transition persists the review outcome of a still-pending action.
	Transition(
		ctx context.Context,
		pa *models.PendingAction,
	) error

	DeletePending(
		ctx context.Context,
		id uint,
		requestedBy uint,
	) (bool, error)
}

// Transactor runs fn inside one storage transaction. Nested calls open a
// savepoint that rolls back on its own when fn fails.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker serializes submissions that share a key.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
