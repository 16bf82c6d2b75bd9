package domain

import "time"

// Stream names
const (
	StreamPlaceChanged = "stream:places:changed"
)

// PlaceChangeOp - тип изменения документа
type PlaceChangeOp string

const (
	PlaceUpserted PlaceChangeOp = "upsert"
	PlaceDeleted  PlaceChangeOp = "delete"
)

// PlaceChangedEvent публикуется процессом загрузки данных при изменении заведения
type PlaceChangedEvent struct {
	PlaceID   string        `json:"place_id"`
	Lat       float64       `json:"lat"`
	Lon       float64       `json:"lon"`
	Op        PlaceChangeOp `json:"op"`
	ChangedAt time.Time     `json:"changed_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
