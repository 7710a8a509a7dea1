// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
)

// DefaultTimeout bounds the connection attempt and each round trip to the
// cache store.
const DefaultTimeout = 5 * time.Second

// ErrMissing is wrapped by *Error when a required setting has no value.
var ErrMissing = errors.New("required setting is missing")

// Error is a configuration error. Key names the environment variable at fault.
type Error struct {
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Cache is the connection configuration for the cache store. It is built
// once at startup and passed by value; nothing mutates it afterwards.
type Cache struct {
	Enabled  bool
	Host     string
	Port     int
	DB       int
	Password string
	Timeout  time.Duration
	TTL      time.Duration
}

// Addr is the host:port dial address.
func (c Cache) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Cache) String() string {
	if !c.Enabled {
		return "cache disabled"
	}
	return fmt.Sprintf("%s/%d", c.Addr(), c.DB)
}

// setting pairs an environment variable with its config file key.
type setting struct {
	env  string
	file string
}

var (
	hostSetting     = setting{"CACHE_HOST", "cache.host"}
	portSetting     = setting{"CACHE_PORT", "cache.port"}
	dbSetting       = setting{"CACHE_DB", "cache.db"}
	enabledSetting  = setting{"CACHE_ENABLED", "cache.enabled"}
	passwordSetting = setting{"CACHE_PASSWORD", "cache.password"}
	timeoutSetting  = setting{"CACHE_TIMEOUT", "cache.timeout"}
	ttlSetting      = setting{"CACHE_TTL", "cache.ttl"}
)

// lookup returns the environment value, falling back to the config file.
func (s setting) lookup(file Type) (string, bool) {
	if v, ok := os.LookupEnv(s.env); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), true
	}
	if v, ok := file.GetScalar(s.file); ok && strings.TrimSpace(v) != "" {
		log.Debugf("%s taken from %s", s.env, file.Source)
		return strings.TrimSpace(v), true
	}
	return "", false
}

// LoadCache resolves the cache connection settings. Host, port and database
// index are required unless caching is switched off with CACHE_ENABLED.
func LoadCache(file Type) (Cache, error) {
	cfg := Cache{
		Enabled: true,
		Timeout: DefaultTimeout,
	}

	if v, ok := enabledSetting.lookup(file); ok {
		enabled, err := parseSwitch(v)
		if err != nil {
			return Cache{}, &Error{Key: enabledSetting.env, Err: err}
		}
		cfg.Enabled = enabled
	}

	if !cfg.Enabled {
		log.Debug("cache disabled by configuration")
		return cfg, nil
	}

	host, ok := hostSetting.lookup(file)
	if !ok {
		return Cache{}, &Error{Key: hostSetting.env, Err: ErrMissing}
	}
	cfg.Host = host

	port, err := requiredInt(file, portSetting)
	if err != nil {
		return Cache{}, err
	}
	if port < 1 || port > 65535 {
		return Cache{}, &Error{Key: portSetting.env, Err: fmt.Errorf("port %d is outside 1..65535", port)}
	}
	cfg.Port = port

	db, err := requiredInt(file, dbSetting)
	if err != nil {
		return Cache{}, err
	}
	if db < 0 {
		return Cache{}, &Error{Key: dbSetting.env, Err: fmt.Errorf("database index %d is negative", db)}
	}
	cfg.DB = db

	cfg.Password, _ = passwordSetting.lookup(file)

	if v, ok := timeoutSetting.lookup(file); ok {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Cache{}, &Error{Key: timeoutSetting.env, Err: fmt.Errorf("invalid timeout %q", v)}
		}
		cfg.Timeout = d
	}

	if v, ok := ttlSetting.lookup(file); ok {
		d, err := parseTTL(v)
		if err != nil {
			return Cache{}, &Error{Key: ttlSetting.env, Err: err}
		}
		cfg.TTL = d
	}

	log.WithFields(log.Fields{
		"addr":    cfg.Addr(),
		"db":      cfg.DB,
		"timeout": cfg.Timeout,
		"ttl":     cfg.TTL,
	}).Debug("cache configuration loaded")

	return cfg, nil
}

func requiredInt(file Type, s setting) (int, error) {
	v, ok := s.lookup(file)
	if !ok {
		return 0, &Error{Key: s.env, Err: ErrMissing}
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &Error{Key: s.env, Err: fmt.Errorf("%q is not an integer", v)}
	}
	return n, nil
}

// parseSwitch accepts the usual spellings of on and off.
func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean", v)
}

// parseTTL accepts a Go duration or a bare number of seconds. Zero disables
// expiry.
func parseTTL(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("negative ttl %q", v)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid ttl %q", v)
	}
	return d, nil
}
