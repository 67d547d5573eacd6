package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pandaR2708/AI-News-analyzer/internal/model"
	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix  = "newsnarrator:analysis:"
	AnalyzeQueueKey = "newsnarrator:queue:analyze"
	DeadLetterKey   = "newsnarrator:queue:failed"
)

type AnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAnalysisCache(client *redis.Client, ttl time.Duration) *AnalysisCache {
	return &AnalysisCache{client: client, ttl: ttl}
}

func CacheKey(company string) string {
	return cacheKeyPrefix + normalizeCompany(company)
}

func (c *AnalysisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get returns nil without error on a cache miss.
func (c *AnalysisCache) Get(ctx context.Context, company string) (*model.AnalysisResult, error) {
	if normalizeCompany(company) == "" {
		return nil, nil
	}

	data, err := c.client.Get(ctx, CacheKey(company)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	return decodeResult(data)
}

func (c *AnalysisCache) Set(ctx context.Context, result *model.AnalysisResult) error {
	data, err := encodeResult(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, CacheKey(result.Company), data, c.ttl).Err()
}

func encodeResult(result *model.AnalysisResult) ([]byte, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	return data, nil
}

func decodeResult(data []byte) (*model.AnalysisResult, error) {
	var result model.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	return &result, nil
}

type AnalyzeQueue struct {
	client *redis.Client
}

func NewAnalyzeQueue(client *redis.Client) *AnalyzeQueue {
	return &AnalyzeQueue{client: client}
}

func (q *AnalyzeQueue) Push(ctx context.Context, company string) error {
	return q.client.LPush(ctx, AnalyzeQueueKey, company).Err()
}

// Pop blocks up to timeout. It returns "" without error when nothing arrived.
func (q *AnalyzeQueue) Pop(ctx context.Context, timeout time.Duration) (string, error) {
	result, err := q.client.BRPop(ctx, timeout, AnalyzeQueueKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return result[1], nil
}

func (q *AnalyzeQueue) DeadLetter(ctx context.Context, company string) error {
	return q.client.LPush(ctx, DeadLetterKey, company).Err()
}
