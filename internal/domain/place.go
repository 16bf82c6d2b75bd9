package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Place - карточка заведения. Создаётся и изменяется внешним процессом, сервис только читает.
type Place struct {
	ID           string       `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	Category     string       `json:"category" db:"category"`
	Lat          float64      `json:"lat" db:"lat"`
	Lon          float64      `json:"lon" db:"lon"`
	Address      string       `json:"address" db:"address"`
	About        string       `json:"about" db:"about"`
	Rating       *float64     `json:"rating,omitempty" db:"rating"`
	OpeningHours OpeningHours `json:"opening_hours" db:"opening_hours"`
	Images       []string     `json:"images" db:"-"`
	Reviews      Reviews      `json:"reviews" db:"reviews"`
	Website      string       `json:"website,omitempty" db:"website"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	Geohash      string       `json:"geohash" db:"geohash"`

	// Distance вычисляется для текущей локации пользователя и не хранится
	Distance float64 `json:"distance_km" db:"-"`
}

// RatingValue - рейтинг для сортировки, отсутствующий считается 0
func (p *Place) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// Point возвращает координаты заведения
func (p *Place) Point() Point {
	return Point{Lat: p.Lat, Lon: p.Lon}
}

// Review - отзыв о заведении
type Review struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Reviews хранится в jsonb
type Reviews []Review

func (r *Reviews) Scan(src interface{}) error {
	return scanJSON(src, r)
}

func (r Reviews) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Review(r))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// OpeningHours - либо пара open/close, либо расписание по дням недели
// ("Monday" -> "9:00 AM – 10:00 PM")
type OpeningHours struct {
	OpeningTime string            `json:"opening_time,omitempty"`
	ClosingTime string            `json:"closing_time,omitempty"`
	Weekly      map[string]string `json:"weekly,omitempty"`
}

func (h *OpeningHours) Scan(src interface{}) error {
	return scanJSON(src, h)
}

func (h OpeningHours) Value() (driver.Value, error) {
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
