//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/place-discovery/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	placeID := flag.String("id", "", "place id, random if empty")
	lat := flag.Float64("lat", 12.9716, "place latitude")
	lon := flag.Float64("lon", 77.5946, "place longitude")
	op := flag.String("op", string(domain.PlaceUpserted), "upsert or delete")
	flag.Parse()

	if *placeID == "" {
		*placeID = uuid.NewString()
	}

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.PlaceChangedEvent{
		PlaceID:   *placeID,
		Lat:       *lat,
		Lon:       *lon,
		Op:        domain.PlaceChangeOp(*op),
		ChangedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamPlaceChanged,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamPlaceChanged)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Place ID: %s (%s)\n", event.PlaceID, event.Op)
	fmt.Printf("   Coordinates: %.6f, %.6f\n", event.Lat, event.Lon)
}
