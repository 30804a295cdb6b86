package resource

import "context"

// Store persists one resource type. Implementations must run every query
// through the transaction carried by ctx, when there is one.
type Store interface {
	Type() Type

	Exists(ctx context.Context, id uint) (bool, error)
	// NameInUse reports whether a live record other than excludeID already
	// holds name. Types without a unique name always report false.
	NameInUse(ctx context.Context, name string, excludeID uint) (bool, error)

	// Load returns the current record as a payload, or resource_not_found.
	Load(ctx context.Context, id uint) (Payload, error)

	Create(ctx context.Context, p Payload) (uint, error)
	UpdateByID(ctx context.Context, id uint, p Payload) error
	// DeleteByID fails with reference_in_use while other records point at id.
	DeleteByID(ctx context.Context, id uint) error

	// Get and List serve the read-only catalog.
	Get(ctx context.Context, id uint) (any, error)
	List(ctx context.Context, page, limit int) (any, int64, error)
}
