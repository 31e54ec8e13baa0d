package queries

import (
	"fmt"

	"prepcenter/internal/adapters/out/postgres/pgerr"
	"prepcenter/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// storeError classifies a read failure so a lost connection surfaces as a
// TransientStoreError. Reads have no entity to conflict on.
func storeError(op string, err error) error {
	return pgerr.Translate(op, "", nil, err)
}

func idFrom(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

func optionalIDFrom(raw uuid.NullUUID) (*kernel.UUID, error) {
	if !raw.Valid {
		return nil, nil
	}
	id, err := idFrom(raw.UUID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// names binds a list of enum values as a Postgres text array for "= ANY(?)".
func names[S fmt.Stringer](values ...S) any {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}
	return pq.Array(out)
}
