package app

import (
	"github.com/robfig/cron/v3"

	"github.com/creatorstack/storefront/config"
	"github.com/creatorstack/storefront/internal/catalog"
	"github.com/creatorstack/storefront/internal/eventbus"
	"github.com/creatorstack/storefront/internal/store"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides the local record store
type StoreProvider interface {
	RecordStore() store.RecordStore
}

// BusProvider provides the cross-view event bus
type BusProvider interface {
	Bus() *eventbus.Bus
}

// CatalogProvider provides the merged product catalog
type CatalogProvider interface {
	Catalog() *catalog.Service
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context.
// Components should depend on specific providers or this combined interface.
type AppContext interface {
	ConfigProvider
	StoreProvider
	BusProvider
	CatalogProvider
	SchedulerProvider
}
