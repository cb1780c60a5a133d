package handlers

import (
	"CampusMind/internal/service"
	"CampusMind/pkg/cache"
	"CampusMind/pkg/sse"

	"gorm.io/gorm"
)

type Handlers struct {
	db          *gorm.DB
	coordinator *service.Coordinator
	hub         *sse.Hub
	cache       cache.Cache
}

func NewHandlers(db *gorm.DB, coordinator *service.Coordinator, hub *sse.Hub, c cache.Cache) *Handlers {
	return &Handlers{
		db:          db,
		coordinator: coordinator,
		hub:         hub,
		cache:       c,
	}
}
