package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"caloria/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisClient() (*RedisClient, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	// Test connection
	_, err = client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
		ctx:    ctx,
	}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func adjustedBudgetKey(userID uint, date string) string {
	return fmt.Sprintf("adjusted_budget:%d:%s", userID, date)
}

// StoreAdjustedBudget caches a distribution result for (user, date) with a
// short expiration. The cache is display-level only; every observation or
// reservation write invalidates it.
func (r *RedisClient) StoreAdjustedBudget(userID uint, budget *models.AdjustedBudget, duration time.Duration) error {
	jsonData, err := json.Marshal(budget)
	if err != nil {
		return fmt.Errorf("failed to marshal adjusted budget: %w", err)
	}

	err = r.client.Set(r.ctx, adjustedBudgetKey(userID, budget.Date), jsonData, duration).Err()
	if err != nil {
		return fmt.Errorf("failed to store adjusted budget in Redis: %w", err)
	}
	return nil
}

// GetAdjustedBudget returns the cached result for (user, date), with a
// found flag distinguishing a miss from an error.
func (r *RedisClient) GetAdjustedBudget(userID uint, date string) (*models.AdjustedBudget, bool, error) {
	data, err := r.client.Get(r.ctx, adjustedBudgetKey(userID, date)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil // Key doesn't exist
		}
		return nil, false, fmt.Errorf("failed to get adjusted budget from Redis: %w", err)
	}

	var budget models.AdjustedBudget
	if err := json.Unmarshal([]byte(data), &budget); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal adjusted budget: %w", err)
	}
	return &budget, true, nil
}

// InvalidateAdjustedBudget drops the cached result for (user, date).
func (r *RedisClient) InvalidateAdjustedBudget(userID uint, date string) error {
	return r.client.Del(r.ctx, adjustedBudgetKey(userID, date)).Err()
}

// GetStatus reports connection pool statistics for the debug endpoints.
func (r *RedisClient) GetStatus() (map[string]interface{}, error) {
	info, err := r.client.Info(r.ctx).Result()
	if err != nil {
		return nil, err
	}

	stats := r.client.PoolStats()

	return map[string]interface{}{
		"connected":    true,
		"hits":         stats.Hits,
		"misses":       stats.Misses,
		"active_conns": stats.TotalConns,
		"redis_info":   info,
	}, nil
}
