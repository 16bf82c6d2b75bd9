package domain

// Filter - пользовательский фильтр категорий
type Filter string

const (
	FilterAll        Filter = "All"
	FilterCafe       Filter = "Cafe"
	FilterRestaurant Filter = "Restaurant"
	FilterBar        Filter = "Bar"
	FilterStore      Filter = "Store"
	FilterMall       Filter = "Mall"
	FilterGym        Filter = "Gym"
)

// Теги категорий, как они хранятся в документах (регистр важен)
const (
	TagCafe         = "Cafe"
	TagBakery       = "Bakery"
	TagRestaurant   = "Restaurant"
	TagBar          = "Bar"
	TagPub          = "Pub"
	TagStore        = "Store"
	TagSupermarket  = "Supermarket"
	TagShoppingMall = "Shopping_mall"
	TagGym          = "Gym"
)

// CategoryMapping - фильтр -> набор тегов в хранилище. All - единственный фильтр без тегов.
var CategoryMapping = map[Filter][]string{
	FilterAll:        {},
	FilterCafe:       {TagCafe, TagBakery},
	FilterRestaurant: {TagRestaurant},
	FilterBar:        {TagBar, TagPub},
	FilterStore:      {TagStore, TagSupermarket},
	FilterMall:       {TagShoppingMall},
	FilterGym:        {TagGym},
}

// Filters возвращает фильтры в порядке отображения
func Filters() []Filter {
	return []Filter{FilterAll, FilterCafe, FilterRestaurant, FilterBar, FilterStore, FilterMall, FilterGym}
}

// Valid проверяет, что фильтр есть в таблице
func (f Filter) Valid() bool {
	_, ok := CategoryMapping[f]
	return ok
}

// Tags возвращает копию набора тегов фильтра
func (f Filter) Tags() []string {
	tags := CategoryMapping[f]
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
