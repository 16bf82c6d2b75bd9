package domain

// LoadState - состояние контроллера пагинации
type LoadState string

const (
	StateIdle           LoadState = "idle"
	StateLoadingInitial LoadState = "loading-initial"
	StateLoadingMore    LoadState = "loading-more"
	StateError          LoadState = "error"
)

// PageSnapshot - то, что получает слой отображения
type PageSnapshot struct {
	State      LoadState   `json:"state"`
	Params     QueryParams `json:"params"`
	Places     []Place     `json:"places"`
	HasMore    bool        `json:"has_more"`
	Generation uint64      `json:"generation"`
	Err        error       `json:"-"`
}

// Empty - успешная загрузка без результатов (не путать с ошибкой)
func (s PageSnapshot) Empty() bool {
	return s.State == StateIdle && s.Err == nil && len(s.Places) == 0
}
