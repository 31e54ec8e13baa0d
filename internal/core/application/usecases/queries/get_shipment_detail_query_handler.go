package queries

import (
	"context"
	"database/sql"
	"errors"

	"prepcenter/internal/core/domain/model/order"
	"prepcenter/internal/core/domain/model/shipment"
	"prepcenter/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetShipmentDetailQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentDetailQueryHandler(db *gorm.DB) GetShipmentDetailQueryHandler {
	return GetShipmentDetailQueryHandler{db: db}
}

func (h GetShipmentDetailQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentDetailQuery,
) (*ShipmentDetail, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	detail, err := h.shipment(db, query)
	if err != nil {
		return nil, err
	}
	if detail.Items, err = h.items(db, query); err != nil {
		return nil, err
	}
	if detail.Order, err = h.order(db, query); err != nil {
		return nil, err
	}
	return detail, nil
}

func (h GetShipmentDetailQueryHandler) shipment(db *gorm.DB, query GetShipmentDetailQuery) (*ShipmentDetail, error) {
	var (
		detail      ShipmentDetail
		id, ownerID uuid.UUID
		status      string
	)
	row := db.Raw(`
		SELECT id, owner_id, status, origin, destination, COALESCE(tracking_number, ''), created_at
		FROM shipments
		WHERE id = ?
	`, query.shipmentID.Bytes()).Row()
	err := row.Scan(&id, &ownerID, &status, &detail.Origin, &detail.Destination,
		&detail.TrackingNumber, &detail.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("shipment", query.shipmentID.String())
	}
	if err != nil {
		return nil, storeError("get shipment detail", err)
	}

	if detail.ID, err = idFrom(id); err != nil {
		return nil, err
	}
	if detail.OwnerID, err = idFrom(ownerID); err != nil {
		return nil, err
	}
	if !query.actor.Role().IsStaff() && !query.actor.Is(detail.OwnerID) {
		return nil, errs.NewObjectNotFoundError("shipment", query.shipmentID.String())
	}
	if detail.Status, err = shipment.ParseStatus(status); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (h GetShipmentDetailQueryHandler) items(db *gorm.DB, query GetShipmentDetailQuery) ([]ShipmentItemView, error) {
	rows, err := db.Raw(`
		SELECT id, product_name, sku, quantity, prep_type
		FROM shipment_items
		WHERE shipment_id = ?
		ORDER BY position
	`, query.shipmentID.Bytes()).Rows()
	if err != nil {
		return nil, storeError("get shipment detail", err)
	}
	defer rows.Close()

	items := make([]ShipmentItemView, 0)
	for rows.Next() {
		var (
			item     ShipmentItemView
			id       uuid.UUID
			prepType string
		)
		if err = rows.Scan(&id, &item.ProductName, &item.SKU, &item.Quantity, &prepType); err != nil {
			return nil, err
		}
		if item.ID, err = idFrom(id); err != nil {
			return nil, err
		}
		item.PrepType = shipment.PrepType(prepType)
		items = append(items, item)
	}
	return items, storeError("get shipment detail", rows.Err())
}

func (h GetShipmentDetailQueryHandler) order(db *gorm.DB, query GetShipmentDetailQuery) (*OrderSummary, error) {
	var (
		summary         OrderSummary
		id              uuid.UUID
		service, status string
	)
	row := db.Raw(`
		SELECT id, service, status, total_cents, currency, invoice_id IS NOT NULL
		FROM orders
		WHERE shipment_id = ?
	`, query.shipmentID.Bytes()).Row()
	err := row.Scan(&id, &service, &status, &summary.TotalCents, &summary.Currency, &summary.Invoiced)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("get shipment detail", err)
	}

	if summary.ID, err = idFrom(id); err != nil {
		return nil, err
	}
	if summary.Status, err = order.ParseStatus(status); err != nil {
		return nil, err
	}
	summary.Service = shipment.PrepType(service)
	return &summary, nil
}
