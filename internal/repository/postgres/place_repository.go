package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/pkg/errors"
)

const placeColumns = `
	id, name, category, lat, lon, geohash, address, about, rating,
	opening_hours, images, reviews, website, created_at`

var collectionName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// placeRow - строка таблицы; images хранится как text[]
type placeRow struct {
	domain.Place
	Images pq.StringArray `db:"images"`
}

func (r placeRow) toDomain() domain.Place {
	p := r.Place
	p.Images = []string(r.Images)
	if p.Images == nil {
		p.Images = []string{}
	}
	return p
}

type placeRepository struct {
	db         *sqlx.DB
	collection string
	logger     *zap.Logger
}

// NewPlaceRepository - коллекция заведений в PostgreSQL. collection - таблица по умолчанию,
// если дескриптор запроса её не задаёт.
func NewPlaceRepository(db *DB, collection string) repository.PlaceRepository {
	return &placeRepository{
		db:         db.DB,
		collection: collection,
		logger:     db.logger,
	}
}

func (r *placeRepository) table(name string) (string, error) {
	if name == "" {
		name = r.collection
	}
	if !collectionName.MatchString(name) {
		return "", fmt.Errorf("invalid collection name %q", name)
	}
	return pq.QuoteIdentifier(name), nil
}

// Query - один geohash-бокс: диапазон, теги, порядок и keyset-пагинация
func (r *placeRepository) Query(ctx context.Context, q domain.QueryDescriptor) ([]domain.Place, error) {
	table, err := r.table(q.Collection)
	if err != nil {
		return nil, err
	}

	var (
		conditions = []string{"geohash >= $1", "geohash <= $2"}
		args       = []interface{}{q.Range.Start, q.Range.End}
		argIdx     = 3
	)

	if len(q.Categories) > 0 {
		conditions = append(conditions, fmt.Sprintf("category = ANY($%d)", argIdx))
		args = append(args, pq.Array(q.Categories))
		argIdx++
	}

	var orderBy string
	switch q.OrderBy {
	case domain.OrderRating:
		orderBy = "COALESCE(rating, 0) DESC, id ASC"
		if q.StartAfter != nil {
			conditions = append(conditions, fmt.Sprintf(
				"(COALESCE(rating, 0) < $%d OR (COALESCE(rating, 0) = $%d AND id > $%d))",
				argIdx, argIdx, argIdx+1,
			))
			args = append(args, q.StartAfter.Rating, q.StartAfter.ID)
			argIdx += 2
		}
	case domain.OrderCreatedAt:
		orderBy = "created_at DESC, id ASC"
		if q.StartAfter != nil {
			conditions = append(conditions, fmt.Sprintf(
				"(created_at < $%d OR (created_at = $%d AND id > $%d))",
				argIdx, argIdx, argIdx+1,
			))
			args = append(args, q.StartAfter.CreatedAt, q.StartAfter.ID)
			argIdx += 2
		}
	default:
		orderBy = "geohash ASC, id ASC"
		if q.StartAfter != nil {
			conditions = append(conditions, fmt.Sprintf("(geohash, id) > ($%d, $%d)", argIdx, argIdx+1))
			args = append(args, q.StartAfter.Geohash, q.StartAfter.ID)
			argIdx += 2
		}
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s
		LIMIT $%d
	`, placeColumns, table, strings.Join(conditions, " AND "), orderBy, argIdx)
	args = append(args, q.Limit)

	var rows []placeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to query places",
			zap.String("range", q.Range.Key()),
			zap.Strings("categories", q.Categories),
			zap.Error(err),
		)
		return nil, errors.ErrDatabaseError.Wrap(err)
	}

	places := make([]domain.Place, 0, len(rows))
	for _, row := range rows {
		places = append(places, row.toDomain())
	}
	return places, nil
}

func (r *placeRepository) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	table, err := r.table("")
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, placeColumns, table)

	var row placeRow
	err = r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get place by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}

	place := row.toDomain()
	return &place, nil
}

func (r *placeRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Place, error) {
	if len(ids) == 0 {
		return []domain.Place{}, nil
	}

	table, err := r.table("")
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ANY($1) ORDER BY id`, placeColumns, table)

	var rows []placeRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		r.logger.Error("Failed to get places by IDs", zap.Int("count", len(ids)), zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}

	places := make([]domain.Place, 0, len(rows))
	for _, row := range rows {
		places = append(places, row.toDomain())
	}
	return places, nil
}
