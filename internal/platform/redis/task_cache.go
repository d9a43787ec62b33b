package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/phrazzld/task-manager-api/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

const (
	keyTaskList       = "task:list"
	keyTaskPrefix     = "task:"
	keyTaskGeneration = "task:generation"
)

// setIfGenerationScript writes KEYS[2] only while KEYS[1] still holds the
// generation the caller observed before reading from the store. A missing
// generation key counts as 0.
var setIfGenerationScript = goredis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

// TaskCache caches single tasks and the full task list in Redis.
//
// Every invalidation bumps a generation counter. Fills carry the generation
// read before the store query and are dropped if it has moved, so a slow
// reader cannot overwrite the cache with data older than the last write.
type TaskCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache whose entries expire after ttl.
func NewTaskCache(rdb *goredis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

func taskKey(id int64) string {
	return keyTaskPrefix + strconv.FormatInt(id, 10)
}

// GetTask returns the cached task, or nil on a miss.
func (c *TaskCache) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	hit, err := c.get(ctx, taskKey(id), &task)
	if err != nil || !hit {
		return nil, err
	}
	return &task, nil
}

// Generation returns the current invalidation generation.
func (c *TaskCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, keyTaskGeneration).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetTask stores a single task read at generation gen.
// Reports false when a later invalidation made the task stale.
func (c *TaskCache) SetTask(ctx context.Context, gen int64, task *domain.Task) (bool, error) {
	return c.set(ctx, gen, taskKey(task.ID), task)
}

// GetList returns the cached task list, or nil on a miss.
func (c *TaskCache) GetList(ctx context.Context) ([]domain.Task, error) {
	var list []domain.Task
	hit, err := c.get(ctx, keyTaskList, &list)
	if err != nil || !hit {
		return nil, err
	}
	if list == nil {
		list = []domain.Task{}
	}
	return list, nil
}

// SetList stores the full task list read at generation gen.
// Reports false when a later invalidation made the list stale.
func (c *TaskCache) SetList(ctx context.Context, gen int64, list []domain.Task) (bool, error) {
	if list == nil {
		list = []domain.Task{}
	}
	return c.set(ctx, gen, keyTaskList, list)
}

// Invalidate bumps the generation and drops the list and, when ids are
// given, those single-task entries, in one MULTI/EXEC block.
func (c *TaskCache) Invalidate(ctx context.Context, ids ...int64) error {
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, keyTaskList)
	for _, id := range ids {
		keys = append(keys, taskKey(id))
	}

	_, err := c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Incr(ctx, keyTaskGeneration)
		pipe.Del(ctx, keys...)
		return nil
	})
	return err
}

func (c *TaskCache) get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *TaskCache) set(ctx context.Context, gen int64, key string, v any) (bool, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return false, err
	}

	stored, err := setIfGenerationScript.Run(ctx, c.rdb,
		[]string{keyTaskGeneration, key},
		strconv.FormatInt(gen, 10), b, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}
