// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"bufio"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/redis/go-redis/v9"

	"github.com/staranto/easyconvert/internal/config"
)

// scanCount is the COUNT hint passed to SCAN.
const scanCount = 100

// Client wraps a go-redis client bound to one logical database.
type Client struct {
	rdb *redis.Client
	cfg config.Cache
}

// Status is the result of the health probe. Version and memory figures are
// best effort and stay empty when the store doesn't report them.
type Status struct {
	Reachable  bool   `json:"reachable" yaml:"reachable"`
	Addr       string `json:"addr" yaml:"addr"`
	DB         int    `json:"db" yaml:"db"`
	Entries    int64  `json:"entry_count" yaml:"entry_count"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	UsedMemory uint64 `json:"used_memory,omitempty" yaml:"used_memory,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// New builds a client without touching the network. go-redis dials lazily, so
// the first command is what actually connects.
func New(cfg config.Cache) *Client {
	c := &Client{cfg: cfg}
	timeout := c.timeout()

	c.rdb = redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		// Fail fast. One invocation is one request; retrying a dead store
		// only delays the fallback.
		MaxRetries: -1,
	})

	return c
}

// Connect builds a client and verifies the store answers PING within the
// configured timeout.
func Connect(ctx context.Context, cfg config.Cache) (*Client, error) {
	c := New(cfg)
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		log.WithError(err).WithField("addr", cfg.Addr()).Warn("cache connection failed")
		return nil, &ConnectionError{Addr: cfg.Addr(), DB: cfg.DB, Err: err}
	}

	log.WithFields(log.Fields{
		"addr": cfg.Addr(),
		"db":   cfg.DB,
	}).Debug("cache connection established")

	return c, nil
}

// Ping round-trips to the store, bounded by the configured timeout.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()
	return c.rdb.Ping(ctx).Err()
}

// Get returns the value stored under key. A missing key is not an error.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		log.Debugf("cache miss: %s", key)
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable("get", key, err)
	}
	log.Debugf("cache hit: %s", key)
	return val, true, nil
}

// Values fetches several keys in one MGET round trip. Keys that are missing
// or hold a non-string value are absent from the result.
func (c *Client) Values(ctx context.Context, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, unavailable("mget", "", err)
	}
	for i, v := range vals {
		if s, ok := v.(string); ok {
			out[keys[i]] = s
		}
	}
	return out, nil
}

// Set stores value under key, overwriting whatever was there. The configured
// TTL, if any, is applied.
func (c *Client) Set(ctx context.Context, key, value string) error {
	if err := c.rdb.Set(ctx, key, value, c.cfg.TTL).Err(); err != nil {
		return unavailable("set", key, err)
	}
	log.WithFields(log.Fields{"key": key, "ttl": c.cfg.TTL}).Debug("cache set")
	return nil
}

// Delete removes a single key and reports whether it existed.
func (c *Client) Delete(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Del(ctx, key).Result()
	if err != nil {
		return false, unavailable("delete", key, err)
	}
	return n > 0, nil
}

// Count returns the number of keys in the configured logical database.
func (c *Client) Count(ctx context.Context) (int64, error) {
	n, err := c.rdb.DBSize(ctx).Result()
	if err != nil {
		return 0, unavailable("count", "", err)
	}
	return n, nil
}

// DeleteAll flushes the configured logical database. Irreversible.
func (c *Client) DeleteAll(ctx context.Context) error {
	if err := c.rdb.FlushDB(ctx).Err(); err != nil {
		return unavailable("clear", "", err)
	}
	log.WithField("db", c.cfg.DB).Info("cache cleared")
	return nil
}

// Keys returns the keys matching pattern in store order. An empty pattern
// matches everything. The result is never nil.
func (c *Client) Keys(ctx context.Context, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}

	keys := []string{}
	iter := c.rdb.Scan(ctx, 0, pattern, scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, unavailable("keys", pattern, err)
	}

	return keys, nil
}

// Status probes the store. It never fails: any error is reported in the
// returned Status with Reachable false.
func (c *Client) Status(ctx context.Context) Status {
	st := Status{
		Addr: c.cfg.Addr(),
		DB:   c.cfg.DB,
	}

	if err := c.Ping(ctx); err != nil {
		st.Error = err.Error()
		return st
	}

	n, err := c.Count(ctx)
	if err != nil {
		st.Error = err.Error()
		return st
	}
	st.Reachable = true
	st.Entries = n

	// Not every Redis-compatible store answers every INFO section.
	if info, err := c.rdb.Info(ctx, "server").Result(); err == nil {
		st.Version = parseInfo(info)["redis_version"]
	} else {
		log.WithError(err).Debug("INFO server unavailable")
	}
	if info, err := c.rdb.Info(ctx, "memory").Result(); err == nil {
		if used, err := strconv.ParseUint(parseInfo(info)["used_memory"], 10, 64); err == nil {
			st.UsedMemory = used
		}
	} else {
		log.WithError(err).Debug("INFO memory unavailable")
	}

	return st
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) timeout() time.Duration {
	if c.cfg.Timeout > 0 {
		return c.cfg.Timeout
	}
	return config.DefaultTimeout
}

// parseInfo turns the INFO reply into a field map.
func parseInfo(info string) map[string]string {
	fields := make(map[string]string)
	sc := bufio.NewScanner(strings.NewReader(info))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if k, v, ok := strings.Cut(line, ":"); ok {
			fields[k] = v
		}
	}
	return fields
}
