package elasticsearch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/config"
)

// Client - клиент Elasticsearch с логгером сервиса
type Client struct {
	*elasticsearch.Client
	logger *zap.Logger
}

func New(cfg *config.ElasticsearchConfig, logger *zap.Logger) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 10 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	client := &Client{Client: es, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping elasticsearch: %w", err)
	}

	logger.Info("Elasticsearch connected", zap.Strings("addresses", cfg.Addresses))

	return client, nil
}

// NewForTest оборачивает готовый клиент без проверки соединения
func NewForTest(es *elasticsearch.Client, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{Client: es, logger: logger}
}

func (c *Client) Health(ctx context.Context) error {
	resp, err := c.Ping(c.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("elasticsearch ping: %s", resp.Status())
	}
	return nil
}
