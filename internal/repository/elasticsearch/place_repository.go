package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/pkg/errors"
)

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source domain.Place `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type mgetResponse struct {
	Docs []struct {
		Found  bool         `json:"found"`
		Source domain.Place `json:"_source"`
	} `json:"docs"`
}

type getResponse struct {
	Found  bool         `json:"found"`
	Source domain.Place `json:"_source"`
}

type placeRepository struct {
	client *Client
	index  string
}

// NewPlaceRepository - коллекция заведений в индексе Elasticsearch.
// Документы хранят geohash и category как keyword.
func NewPlaceRepository(client *Client, index string) repository.PlaceRepository {
	return &placeRepository{client: client, index: index}
}

// buildSearch строит тело запроса для одного geohash-бокса
func buildSearch(q domain.QueryDescriptor) map[string]interface{} {
	filters := []interface{}{
		map[string]interface{}{
			"range": map[string]interface{}{
				"geohash": map[string]interface{}{
					"gte": q.Range.Start,
					"lte": q.Range.End,
				},
			},
		},
	}
	if len(q.Categories) > 0 {
		filters = append(filters, map[string]interface{}{
			"terms": map[string]interface{}{"category": q.Categories},
		})
	}

	var (
		sort  []interface{}
		after []interface{}
	)
	switch q.OrderBy {
	case domain.OrderRating:
		sort = []interface{}{
			map[string]interface{}{"rating": map[string]interface{}{"order": "desc", "missing": 0}},
			map[string]interface{}{"id": "asc"},
		}
		if q.StartAfter != nil {
			after = []interface{}{q.StartAfter.Rating, q.StartAfter.ID}
		}
	case domain.OrderCreatedAt:
		sort = []interface{}{
			map[string]interface{}{"created_at": "desc"},
			map[string]interface{}{"id": "asc"},
		}
		if q.StartAfter != nil {
			after = []interface{}{q.StartAfter.CreatedAt.UnixMilli(), q.StartAfter.ID}
		}
	default:
		sort = []interface{}{
			map[string]interface{}{"geohash": "asc"},
			map[string]interface{}{"id": "asc"},
		}
		if q.StartAfter != nil {
			after = []interface{}{q.StartAfter.Geohash, q.StartAfter.ID}
		}
	}

	body := map[string]interface{}{
		"size": q.Limit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"filter": filters},
		},
		"sort": sort,
	}
	if after != nil {
		body["search_after"] = after
	}
	return body
}

func (r *placeRepository) indexFor(q domain.QueryDescriptor) string {
	if q.Collection != "" {
		return q.Collection
	}
	return r.index
}

func (r *placeRepository) Query(ctx context.Context, q domain.QueryDescriptor) ([]domain.Place, error) {
	body, err := json.Marshal(buildSearch(q))
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.indexFor(q)),
		r.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		r.client.logger.Error("Failed to search places", zap.String("range", q.Range.Key()), zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		r.client.logger.Error("Search returned error",
			zap.String("range", q.Range.Key()),
			zap.String("status", resp.Status()),
		)
		return nil, errors.ErrDatabaseError.Wrap(fmt.Errorf("search places: %s", resp.Status()))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.ErrDatabaseError.Wrap(err)
	}

	places := make([]domain.Place, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		places = append(places, normalize(hit.Source))
	}
	return places, nil
}

func (r *placeRepository) GetByID(ctx context.Context, id string) (*domain.Place, error) {
	resp, err := r.client.Get(r.index, id, r.client.Get.WithContext(ctx))
	if err != nil {
		r.client.logger.Error("Failed to get place", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		return nil, errors.ErrDatabaseError.Wrap(fmt.Errorf("get place %s: %s", id, resp.Status()))
	}

	var doc getResponse
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, errors.ErrDatabaseError.Wrap(err)
	}
	if !doc.Found {
		return nil, nil
	}

	place := normalize(doc.Source)
	return &place, nil
}

func (r *placeRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Place, error) {
	if len(ids) == 0 {
		return []domain.Place{}, nil
	}

	body, err := json.Marshal(map[string]interface{}{"ids": ids})
	if err != nil {
		return nil, err
	}

	resp, err := r.client.Mget(bytes.NewReader(body),
		r.client.Mget.WithContext(ctx),
		r.client.Mget.WithIndex(r.index),
	)
	if err != nil {
		r.client.logger.Error("Failed to mget places", zap.Int("count", len(ids)), zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, errors.ErrDatabaseError.Wrap(fmt.Errorf("mget places: %s", resp.Status()))
	}

	var result mgetResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.ErrDatabaseError.Wrap(err)
	}

	places := make([]domain.Place, 0, len(result.Docs))
	for _, doc := range result.Docs {
		if doc.Found {
			places = append(places, normalize(doc.Source))
		}
	}
	return places, nil
}

func normalize(p domain.Place) domain.Place {
	p.Distance = 0
	if p.Images == nil {
		p.Images = []string{}
	}
	return p
}
