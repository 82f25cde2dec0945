package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"schedule-server/api/sheets"
	"schedule-server/db"
)

const SCHEDULE_WORKBOOK_KEY_PREFIX_V1 = "schedule_workbook_v1"
const SCHEDULE_WORKBOOK_DATA_KEY_V1 = SCHEDULE_WORKBOOK_KEY_PREFIX_V1 + ":data"
const SCHEDULE_WORKBOOK_META_KEY_V1 = SCHEDULE_WORKBOOK_KEY_PREFIX_V1 + ":meta"

// workbookMeta is what we keep next to the raw bytes.
type workbookMeta struct {
	Name      string    `json:"name"`
	FetchedAt time.Time `json:"fetched_at"`
	Size      int       `json:"size"`
}

// RedisScheduleDAO caches the downloaded schedule workbook in Redis.
type RedisScheduleDAO struct {
	client db.RedisClient
}

// NewRedisScheduleDAO initializes a RedisScheduleDAO with the Redis client.
func NewRedisScheduleDAO(client db.RedisClient) *RedisScheduleDAO {
	return &RedisScheduleDAO{client: client}
}

// SetWorkbook stores the workbook bytes and metadata, both expiring after ttl.
func (dao *RedisScheduleDAO) SetWorkbook(wb *sheets.Workbook, ttl time.Duration) error {
	meta, err := json.Marshal(workbookMeta{Name: wb.Name, FetchedAt: wb.FetchedAt, Size: len(wb.Data)})
	if err != nil {
		return fmt.Errorf("failed to marshal workbook meta: %w", err)
	}
	if err := dao.client.SetWithTTL(SCHEDULE_WORKBOOK_DATA_KEY_V1, string(wb.Data), ttl); err != nil {
		return fmt.Errorf("failed to set workbook data in redis: %w", err)
	}
	if err := dao.client.SetWithTTL(SCHEDULE_WORKBOOK_META_KEY_V1, string(meta), ttl); err != nil {
		return fmt.Errorf("failed to set workbook meta in redis: %w", err)
	}
	log.Printf("[RedisScheduleDAO] Cached workbook %s (%d bytes, ttl %s)", wb.Name, len(wb.Data), ttl)
	return nil
}

// GetWorkbook returns the cached workbook, or nil on a cache miss.
func (dao *RedisScheduleDAO) GetWorkbook() (*sheets.Workbook, error) {
	metaStr, err := dao.client.Get(SCHEDULE_WORKBOOK_META_KEY_V1)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workbook meta from redis: %w", err)
	}
	data, err := dao.client.Get(SCHEDULE_WORKBOOK_DATA_KEY_V1)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workbook data from redis: %w", err)
	}

	var meta workbookMeta
	if err := json.Unmarshal([]byte(metaStr), &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workbook meta JSON: %w", err)
	}
	if meta.Size != len(data) {
		log.Printf("[RedisScheduleDAO] Cached workbook size mismatch (%d != %d), ignoring cache", meta.Size, len(data))
		return nil, nil
	}
	return &sheets.Workbook{Name: meta.Name, Data: []byte(data), FetchedAt: meta.FetchedAt}, nil
}

// DeleteWorkbook drops every cached workbook key.
func (dao *RedisScheduleDAO) DeleteWorkbook() error {
	keys, err := dao.client.Keys(SCHEDULE_WORKBOOK_KEY_PREFIX_V1 + ":*")
	if err != nil {
		return fmt.Errorf("failed to list workbook keys: %w", err)
	}
	if err := dao.client.Del(keys...); err != nil {
		return fmt.Errorf("failed to delete workbook keys: %w", err)
	}
	log.Printf("[RedisScheduleDAO] Deleted %d cached workbook keys", len(keys))
	return nil
}
