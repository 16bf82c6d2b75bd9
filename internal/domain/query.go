package domain

import (
	"time"

	"github.com/place-discovery/internal/geo"
)

// SortKey - критерий сортировки выдачи
type SortKey string

const (
	SortByDistance SortKey = "distance"
	SortByRating   SortKey = "rating"
	SortByAdded    SortKey = "added"
)

// Valid проверяет известный ключ сортировки
func (s SortKey) Valid() bool {
	switch s {
	case SortByDistance, SortByRating, SortByAdded:
		return true
	}
	return false
}

// OrderField - поле серверной сортировки. Пустое значение - без серверного порядка
// (хранилище отдаёт документы в порядке geohash, id).
type OrderField string

const (
	OrderNone      OrderField = ""
	OrderRating    OrderField = "rating"
	OrderCreatedAt OrderField = "created_at"
)

// DocumentRef - ссылка на последний документ страницы для "start after"
type DocumentRef struct {
	ID        string    `json:"id"`
	Geohash   string    `json:"geohash"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// RefOf строит ссылку на документ
func RefOf(p Place) *DocumentRef {
	return &DocumentRef{
		ID:        p.ID,
		Geohash:   p.Geohash,
		Rating:    p.RatingValue(),
		CreatedAt: p.CreatedAt,
	}
}

// QueryDescriptor - один запрос к хранилищу документов (один geohash-бокс)
type QueryDescriptor struct {
	Collection string
	Range      geo.Range
	Categories []string
	OrderBy    OrderField
	Limit      int
	StartAfter *DocumentRef
}

// Batch - ответ хранилища на один QueryDescriptor
type Batch struct {
	Descriptor QueryDescriptor
	Places     []Place
}

// Full - хранилище вернуло полную страницу, значит данные могут быть ещё
func (b Batch) Full() bool {
	return b.Descriptor.Limit > 0 && len(b.Places) >= b.Descriptor.Limit
}

// BoxCursor - позиция пагинации внутри одного бокса
type BoxCursor struct {
	After     *DocumentRef `json:"after,omitempty"`
	Exhausted bool         `json:"exhausted"`
}

// Cursor - непрозрачный курсор выдачи: позиция по каждому боксу
type Cursor struct {
	Boxes map[string]BoxCursor `json:"boxes"`
}

// Box возвращает позицию бокса; неизвестный бокс начинается с начала
func (c *Cursor) Box(key string) BoxCursor {
	if c == nil || c.Boxes == nil {
		return BoxCursor{}
	}
	return c.Boxes[key]
}

// Open - есть ли хотя бы один неисчерпанный бокс
func (c *Cursor) Open() bool {
	if c == nil {
		return true
	}
	for _, b := range c.Boxes {
		if !b.Exhausted {
			return true
		}
	}
	return false
}

// Advance возвращает новый курсор после получения страницы batches
func (c *Cursor) Advance(batches []Batch) *Cursor {
	next := &Cursor{Boxes: make(map[string]BoxCursor)}
	if c != nil {
		for k, v := range c.Boxes {
			next.Boxes[k] = v
		}
	}
	for _, b := range batches {
		key := b.Descriptor.Range.Key()
		box := next.Boxes[key]
		if n := len(b.Places); n > 0 {
			box.After = RefOf(b.Places[n-1])
		}
		box.Exhausted = !b.Full()
		next.Boxes[key] = box
	}
	return next
}

// QueryParams - параметры, смена любого из которых требует полного перезапроса.
// Location == nil - локация не получена, запросы к хранилищу не выполняются.
type QueryParams struct {
	Filter         Filter         `json:"filter"`
	SortBy         SortKey        `json:"sort_by"`
	Location       *Point         `json:"location,omitempty"`
	LocationSource LocationSource `json:"location_source,omitempty"`
}

// Resolved - локация, относительно которой посчитана выдача
func (p QueryParams) Resolved() *ResolvedLocation {
	if p.Location == nil {
		return nil
	}
	return &ResolvedLocation{Point: *p.Location, Source: p.LocationSource}
}

// Equal сравнивает параметры по значению
func (p QueryParams) Equal(other QueryParams) bool {
	if p.Filter != other.Filter || p.SortBy != other.SortBy {
		return false
	}
	if p.Location == nil || other.Location == nil {
		return p.Location == nil && other.Location == nil
	}
	return *p.Location == *other.Location
}
