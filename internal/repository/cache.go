package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/yukikurage/task-board-api/internal/models"
)

const taskListCacheKey = "tasks:all"

// CachedTaskRepository wraps a TaskRepository with a Redis read-through
// cache of the full task list. Every write evicts the cached list.
type CachedTaskRepository struct {
	TaskRepository
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedTaskRepository returns base unchanged when client is nil.
func NewCachedTaskRepository(base TaskRepository, client *redis.Client, ttl time.Duration) TaskRepository {
	if base == nil {
		panic("repository.NewCachedTaskRepository: base repository is nil")
	}
	if client == nil {
		return base
	}
	if ttl < 0 {
		ttl = 0
	}
	return &CachedTaskRepository{
		TaskRepository: base,
		redis:          client,
		ttl:            ttl,
	}
}

// List serves the cached list when present and fills the cache otherwise
func (c *CachedTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	if tasks, ok := c.load(ctx); ok {
		return tasks, nil
	}

	tasks, err := c.TaskRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, tasks)
	return tasks, nil
}

func (c *CachedTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := c.TaskRepository.Create(ctx, task); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

func (c *CachedTaskRepository) Update(ctx context.Context, task *models.Task) error {
	if err := c.TaskRepository.Update(ctx, task); err != nil {
		return err
	}
	c.evict(ctx)
	return nil
}

func (c *CachedTaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := c.TaskRepository.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		c.evict(ctx)
	}
	return deleted, nil
}

// BulkReorder evicts whether or not the batch committed.
func (c *CachedTaskRepository) BulkReorder(ctx context.Context, tasks []models.Task) error {
	err := c.TaskRepository.BulkReorder(ctx, tasks)
	c.evict(ctx)
	return err
}

func (c *CachedTaskRepository) load(ctx context.Context) ([]models.Task, bool) {
	data, err := c.redis.Get(ctx, taskListCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// On redis errors fall back to the database without failing.
			log.WithError(err).Warn("Task list cache read failed")
			_ = c.redis.Del(ctx, taskListCacheKey).Err()
		}
		return nil, false
	}
	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		log.WithError(err).Warn("Dropping corrupt task list cache entry")
		_ = c.redis.Del(ctx, taskListCacheKey).Err()
		return nil, false
	}
	return tasks, true
}

func (c *CachedTaskRepository) store(ctx context.Context, tasks []models.Task) {
	if c.ttl == 0 {
		return
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, taskListCacheKey, data, c.ttl).Err(); err != nil {
		log.WithError(err).Warn("Task list cache write failed")
	}
}

func (c *CachedTaskRepository) evict(ctx context.Context) {
	_ = c.redis.Del(ctx, taskListCacheKey).Err()
}
