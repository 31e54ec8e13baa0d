package queries

import (
	"context"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListClientsQueryHandler struct {
	db *gorm.DB
}

func NewListClientsQueryHandler(db *gorm.DB) ListClientsQueryHandler {
	return ListClientsQueryHandler{db: db}
}

// Handle returns clients most recently seen first.
func (h ListClientsQueryHandler) Handle(ctx context.Context, query ListClientsQuery) ([]ClientSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.last_seen_at,
			COUNT(DISTINCT s.id) AS shipments,
			COUNT(DISTINCT s.id) FILTER (WHERE s.status <> ALL(?)) AS active_shipments,
			COUNT(DISTINCT o.id) AS orders
		FROM principals p
		LEFT JOIN shipments s ON s.owner_id = p.id
		LEFT JOIN orders o ON o.shipment_id = s.id
		WHERE p.role = ?
		GROUP BY p.id, p.last_seen_at
		ORDER BY p.last_seen_at DESC, p.id
	`, names(shipment.Shipped, shipment.Cancelled), access.Client.String()).Rows()
	if err != nil {
		return nil, storeError("list clients", err)
	}
	defer rows.Close()

	clients := make([]ClientSummary, 0)
	for rows.Next() {
		var (
			summary ClientSummary
			id      uuid.UUID
		)
		if err = rows.Scan(&id, &summary.LastSeenAt, &summary.ShipmentCount,
			&summary.ActiveShipmentCount, &summary.OrderCount); err != nil {
			return nil, err
		}
		if summary.ID, err = idFrom(id); err != nil {
			return nil, err
		}
		clients = append(clients, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, storeError("list clients", err)
	}
	return clients, nil
}
