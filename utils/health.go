package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents the current status of external services. A nil
// dependency reports healthy.
type HealthStatus struct {
	Store     bool      `json:"store"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth = HealthStatus{Store: true, Redis: true}
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks against the wired
// dependencies and updates the in-memory snapshot. Either client may be nil
// when the deployment runs without it.
func StartHealthMonitor(redisClient *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			storeHealthy := true
			if mongoClient != nil {
				storeHealthy = mongoClient.Ping(ctx, nil) == nil
			}
			redisHealthy := true
			if redisClient != nil {
				redisHealthy = redisClient.Ping(ctx).Err() == nil
			}

			healthMu.Lock()
			currentHealth = HealthStatus{
				Store:     storeHealthy,
				Redis:     redisHealthy,
				CheckedAt: time.Now(),
			}
			healthMu.Unlock()
		}
	}()
}
