package geo

import (
	"math"
	"strings"

	"github.com/mmcloughlin/geohash"
)

const (
	// Precision - длина geohash, который хранится в документах
	Precision = 10

	bitsPerChar = 5
	maxBits     = Precision * bitsPerChar

	base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

	// rangeEnd больше любого символа base32
	rangeEnd = "~"

	// максимальная широта/долгота, которую ещё корректно кодирует geohash
	maxEncodableLat = 90 - 1e-9
	maxEncodableLon = 180 - 1e-9
)

// Range - диапазон строк geohash [Start, End] для запроса по индексу
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Key - стабильный ключ диапазона для курсора
func (r Range) Key() string {
	return r.Start + ".." + r.End
}

// Contains повторяет семантику предиката хранилища: Start <= hash <= End
func (r Range) Contains(hash string) bool {
	return hash >= r.Start && hash <= r.End
}

// WholeWorld - диапазон, покрывающий любой geohash
var WholeWorld = Range{Start: "0", End: rangeEnd}

// Encode кодирует точку в geohash длины Precision
func Encode(lat, lon float64) string {
	lat, lon = normalize(lat, lon)
	return geohash.EncodeWithPrecision(lat, lon, Precision)
}

// QueryBounds возвращает набор диапазонов geohash, объединение которых покрывает
// круг радиуса radiusMeters вокруг центра. Покрытие избыточное: часть точек из
// диапазонов лежит вне круга и должна отфильтровываться по реальному расстоянию.
func QueryBounds(lat, lon, radiusMeters float64) []Range {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsNaN(radiusMeters) || math.IsInf(radiusMeters, 0) {
		return []Range{WholeWorld}
	}
	if radiusMeters < 0 {
		radiusMeters = 0
	}
	lat, lon = normalize(lat, lon)

	angular := radiusMeters / 1000 / EarthRadiusKm
	latDelta := angular / degToRad
	north, south := lat+latDelta, lat-latDelta

	// круг содержит полюс - по долготе покрываем всё
	if north >= 90 || south <= -90 || angular >= math.Pi/2 {
		return []Range{WholeWorld}
	}

	ratio := math.Sin(angular) / math.Cos(lat*degToRad)
	if ratio > 1 {
		ratio = 1
	}
	lonDelta := math.Asin(ratio) / degToRad

	bits := queryBits(latDelta, lonDelta)
	if bits < 1 {
		return []Range{WholeWorld}
	}
	precision := uint((bits + bitsPerChar - 1) / bitsPerChar)

	west, east := wrapLongitude(lon-lonDelta), wrapLongitude(lon+lonDelta)
	samples := [][2]float64{
		{lat, lon}, {lat, west}, {lat, east},
		{north, lon}, {north, west}, {north, east},
		{south, lon}, {south, west}, {south, east},
	}

	ranges := make([]Range, 0, len(samples))
	seen := make(map[Range]struct{}, len(samples))
	for _, s := range samples {
		pLat, pLon := normalize(s[0], s[1])
		r := rangeForHash(geohash.EncodeWithPrecision(pLat, pLon, precision), bits)
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		ranges = append(ranges, r)
	}

	return ranges
}

// queryBits - наибольшее число бит geohash, при котором ячейка не меньше
// протяжённости круга и по широте, и по долготе. Биты чередуются начиная с долготы.
func queryBits(latDelta, lonDelta float64) int {
	const slack = 1 + 1e-9

	lonBits := maxBits
	if lonDelta > 0 {
		lonBits = int(math.Floor(math.Log2(360 / (lonDelta * slack))))
	}
	latBits := maxBits
	if latDelta > 0 {
		latBits = int(math.Floor(math.Log2(180 / (latDelta * slack))))
	}

	bits := maxBits
	if b := 2 * lonBits; b < bits {
		bits = b
	}
	if b := 2*latBits + 1; b < bits {
		bits = b
	}
	return bits
}

// rangeForHash - диапазон всех geohash, у которых первые bits бит совпадают с hash
func rangeForHash(hash string, bits int) Range {
	precision := (bits + bitsPerChar - 1) / bitsPerChar
	if len(hash) < precision {
		return Range{Start: hash, End: hash + rangeEnd}
	}

	hash = hash[:precision]
	base := hash[:len(hash)-1]
	last := strings.IndexByte(base32, hash[len(hash)-1])
	significant := bits - len(base)*bitsPerChar
	unused := uint(bitsPerChar - significant)

	start := (last >> unused) << unused
	end := start + 1<<unused
	if end > len(base32)-1 {
		return Range{Start: base + string(base32[start]), End: base + rangeEnd}
	}
	return Range{Start: base + string(base32[start]), End: base + string(base32[end])}
}

func wrapLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	adjusted := lon + 180
	if adjusted > 0 {
		return math.Mod(adjusted, 360) - 180
	}
	return 180 - math.Mod(-adjusted, 360)
}

func normalize(lat, lon float64) (float64, float64) {
	lon = wrapLongitude(lon)
	if lat > maxEncodableLat {
		lat = maxEncodableLat
	}
	if lat < -90 {
		lat = -90
	}
	if lon > maxEncodableLon {
		lon = -180
	}
	return lat, lon
}

// Cells перечисляет ячейки geohash длины len(Start), из которых состоит диапазон
func (r Range) Cells() []string {
	if r == WholeWorld || r.Start == "" {
		return nil
	}

	base := r.Start[:len(r.Start)-1]
	first := strings.IndexByte(base32, r.Start[len(r.Start)-1])
	last := len(base32)
	if len(r.End) == len(r.Start) && strings.HasPrefix(r.End, base) {
		if idx := strings.IndexByte(base32, r.End[len(r.End)-1]); idx >= 0 {
			last = idx
		}
	}
	if first < 0 {
		return nil
	}

	cells := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		cells = append(cells, base+string(base32[i]))
	}
	return cells
}
