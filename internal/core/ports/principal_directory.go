package ports

import (
	"context"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
)

// PrincipalDirectory remembers every verified principal seen at the transport edge.
// The engine does not own identities; the directory only lets it check the role of a
// user it is asked to bind to a task or station.
type PrincipalDirectory interface {
	// Touch records p as seen now, updating its role.
	Touch(ctx context.Context, p access.Principal) error

	// RoleOf returns the last known role of userID, or an ObjectNotFoundError.
	RoleOf(ctx context.Context, userID kernel.UUID) (access.Role, error)
}
