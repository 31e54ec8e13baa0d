package commands

import (
	"context"

	"prepcenter/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	StationRepoFactory interface {
		StationRepository() ports.StationRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	CrossBorderRepoFactory interface {
		CrossBorderRepository() ports.CrossBorderRepository
	}

	PrincipalDirectoryFactory interface {
		PrincipalDirectory() ports.PrincipalDirectory
	}

	StationUoW interface {
		TxManager
		StationRepoFactory
		PrincipalDirectoryFactory
	}

	StationUoWFactory interface {
		Create() StationUoW
	}

	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ShipmentRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}

	CrossBorderUoW interface {
		TxManager
		CrossBorderRepoFactory
		PrincipalDirectoryFactory
	}

	CrossBorderUoWFactory interface {
		Create() CrossBorderUoW
	}

	UoW interface {
		TxManager
		ShipmentRepoFactory
		TaskRepoFactory
		StationRepoFactory
		OrderRepoFactory
		NotificationRepoFactory
		PrincipalDirectoryFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
