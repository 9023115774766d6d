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
)

// Публикует тестовое событие рендеринга в стрим и ждёт результат.
// Запуск: go run scripts/test_publish.go -redis localhost:6379

type AtlasRenderEvent struct {
	JobID   uuid.UUID    `json:"job_id"`
	TripIDs []uuid.UUID  `json:"trip_ids"`
	Options AtlasOptions `json:"options"`
}

type AtlasOptions struct {
	EpsilonMeters float64 `json:"epsilon_meters"`
	MinPoints     int     `json:"min_points"`
	Limit         int     `json:"limit"`
	CanvasWidth   int     `json:"canvas_width"`
	CanvasHeight  int     `json:"canvas_height"`
	Theme         string  `json:"theme,omitempty"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовое событие: рендеринг атласа по всем поездкам
	event := AtlasRenderEvent{
		JobID:   uuid.New(),
		TripIDs: []uuid.UUID{},
		Options: AtlasOptions{
			EpsilonMeters: 12000,
			MinPoints:     4,
			Limit:         12,
			CanvasWidth:   1920,
			CanvasHeight:  1080,
			Theme:         "dark",
		},
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:atlas:render",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published: message_id=%s job_id=%s\n", result, event.JobID)
	fmt.Println("Waiting for response on stream:atlas:done (60s timeout)...")

	// Ожидание результата
	lastID := "$"
	deadline := time.Now().Add(60 * time.Second)

	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{"stream:atlas:done", lastID},
			Count:   10,
			Block:   2 * time.Second,
		}).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			log.Fatalf("Failed to read response stream: %v", err)
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var response map[string]interface{}
				if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
					continue
				}

				if jobID, ok := response["job_id"].(string); ok {
					if jobID == event.JobID.String() {
						fmt.Printf("\nResponse received!\n")
						prettyJSON, _ := json.MarshalIndent(response, "", "  ")
						fmt.Printf("%s\n", prettyJSON)
						return
					}
				}
			}
		}
	}

	fmt.Println("Timed out waiting for response")
}
