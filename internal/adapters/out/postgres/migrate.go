package postgres

import (
	"prepcenter/internal/adapters/out/postgres/activityrepo"
	"prepcenter/internal/adapters/out/postgres/crossborderrepo"
	"prepcenter/internal/adapters/out/postgres/notificationrepo"
	"prepcenter/internal/adapters/out/postgres/orderrepo"
	"prepcenter/internal/adapters/out/postgres/principalrepo"
	"prepcenter/internal/adapters/out/postgres/shipmentrepo"
	"prepcenter/internal/adapters/out/postgres/stationrepo"
	"prepcenter/internal/adapters/out/postgres/taskrepo"

	"gorm.io/gorm"
)

// Tables lists every table the engine owns, in truncation-safe order.
var Tables = []string{
	"activity_log",
	"relay_cursors",
	"notifications",
	"invoices",
	"orders",
	"tasks",
	"stations",
	"shipment_items",
	"shipments",
	"cross_border_shipments",
	"principals",
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&principalrepo.PrincipalDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.ItemDTO{},
		&stationrepo.StationDTO{},
		&taskrepo.TaskDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.InvoiceDTO{},
		&notificationrepo.NotificationDTO{},
		&crossborderrepo.CrossBorderShipmentDTO{},
		&activityrepo.ActivityDTO{},
		&activityrepo.RelayCursorDTO{},
	)
}
