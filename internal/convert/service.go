// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"context"
	"strconv"
	"time"

	"github.com/apex/log"

	"github.com/staranto/easyconvert/internal/cache"
	"github.com/staranto/easyconvert/internal/numeral"
)

// Key prefixes. Entries are stored as "<operation>:<normalized-input>".
const (
	RomanPrefix  = "roman"
	ArabicPrefix = "arabic"
)

// Store is the slice of the cache client the service needs.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Result describes one conversion. Value is always the Arabic side.
type Result struct {
	Key      string        `json:"key" yaml:"key"`
	Input    string        `json:"input" yaml:"input"`
	Output   string        `json:"output" yaml:"output"`
	Value    int           `json:"value" yaml:"value"`
	Cached   bool          `json:"cached" yaml:"cached"`
	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// Stats counts what happened across calls on one Service.
type Stats struct {
	Hits        int `json:"hits" yaml:"hits"`
	Misses      int `json:"misses" yaml:"misses"`
	CacheErrors int `json:"cache_errors" yaml:"cache_errors"`
	Computed    int `json:"computed" yaml:"computed"`
}

// Service converts numerals through an optional cache. It is not safe for
// concurrent use; each invocation owns one.
type Service struct {
	store  Store
	encode func(int) (string, error)
	decode func(string) (int, error)
	now    func() time.Time
	stats  Stats
}

// Option customizes a Service.
type Option func(*Service)

// WithEncoder replaces the Arabic to Roman codec function.
func WithEncoder(f func(int) (string, error)) Option {
	return func(s *Service) { s.encode = f }
}

// WithDecoder replaces the Roman to Arabic codec function.
func WithDecoder(f func(string) (int, error)) Option {
	return func(s *Service) { s.decode = f }
}

// WithClock sets the time source used for Result.Duration.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a Service backed by store. A nil store disables caching.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		encode: numeral.Encode,
		decode: numeral.Decode,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns a snapshot of the counters.
func (s *Service) Stats() Stats {
	return s.stats
}

// ToRoman converts n to a Roman numeral.
func (s *Service) ToRoman(ctx context.Context, n int) (Result, error) {
	// Out-of-range values are never cached, so don't bother asking.
	if !numeral.InRange(n) {
		return Result{}, &numeral.RangeError{Value: n}
	}

	input := strconv.Itoa(n)
	res := Result{
		Key:   RomanPrefix + ":" + input,
		Input: input,
		Value: n,
	}

	if cached, ok := s.lookup(ctx, res.Key); ok {
		res.Output = cached
		res.Cached = true
		return res, nil
	}

	start := s.now()
	out, err := s.encode(n)
	s.stats.Computed++
	if err != nil {
		return Result{}, err
	}
	res.Duration = s.now().Sub(start)
	res.Output = out

	log.WithFields(log.Fields{
		"input":  n,
		"output": out,
		"took":   res.Duration,
	}).Debug("arabic to roman")

	s.save(ctx, res.Key, out)
	return res, nil
}

// ToArabic converts a Roman numeral to an integer. Input is normalized before
// it is keyed or decoded, so "xiv" and "XIV" share a cache entry.
func (s *Service) ToArabic(ctx context.Context, roman string) (Result, error) {
	input := numeral.Normalize(roman)
	res := Result{
		Key:   ArabicPrefix + ":" + input,
		Input: input,
	}

	if input != "" {
		if cached, ok := s.lookup(ctx, res.Key); ok {
			v, err := strconv.Atoi(cached)
			if err == nil && numeral.InRange(v) {
				res.Output = cached
				res.Value = v
				res.Cached = true
				return res, nil
			}
			// Treat garbage as a miss; the fresh result overwrites it.
			s.stats.Hits--
			s.stats.Misses++
			log.WithField("key", res.Key).Warnf("ignoring unusable cached value %q", cached)
		}
	}

	start := s.now()
	v, err := s.decode(input)
	s.stats.Computed++
	if err != nil {
		return Result{}, err
	}
	res.Duration = s.now().Sub(start)
	res.Value = v
	res.Output = strconv.Itoa(v)

	log.WithFields(log.Fields{
		"input":  input,
		"output": v,
		"took":   res.Duration,
	}).Debug("roman to arabic")

	s.save(ctx, res.Key, res.Output)
	return res, nil
}

// lookup consults the cache. Any failure is logged and reported as a miss.
func (s *Service) lookup(ctx context.Context, key string) (string, bool) {
	if s.store == nil {
		return "", false
	}

	v, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.cacheFailure(err, key, "read")
		return "", false
	}
	if !ok {
		s.stats.Misses++
		return "", false
	}
	s.stats.Hits++
	return v, true
}

// save writes a freshly computed result. Failure is logged and otherwise
// ignored.
func (s *Service) save(ctx context.Context, key, value string) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(ctx, key, value); err != nil {
		s.cacheFailure(err, key, "write")
	}
}

func (s *Service) cacheFailure(err error, key, op string) {
	s.stats.CacheErrors++
	entry := log.WithError(err).WithField("key", key)
	if cache.IsUnavailable(err) {
		entry.Warnf("cache %s failed, continuing without cache", op)
		return
	}
	entry.Errorf("unexpected cache %s error, continuing without cache", op)
}
