package repository

import (
	"context"

	"github.com/place-discovery/internal/domain"
)

// LocateOptions - параметры запроса локации у провайдера
type LocateOptions struct {
	// ClientIP - адрес клиента, по которому определяется локация
	ClientIP string
	// HighAccuracy отклоняет результаты низкой точности (прокси, хостинг)
	HighAccuracy bool
}

// LocationProvider - внешний источник локации устройства
type LocationProvider interface {
	Locate(ctx context.Context, opts LocateOptions) (*domain.Point, error)
}
