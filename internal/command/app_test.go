// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/alicebob/miniredis/v2/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/easyconvert/internal/config"
	"github.com/staranto/easyconvert/internal/convert"
	mylog "github.com/staranto/easyconvert/internal/log"
	"github.com/staranto/easyconvert/internal/meta"
)

type harness struct {
	mr     *miniredis.Miniredis
	cache  config.Cache
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return &harness{
		mr: mr,
		cache: config.Cache{
			Enabled: true,
			Host:    mr.Host(),
			Port:    port,
			Timeout: time.Second,
		},
	}
}

// run executes one invocation and returns its error. Output buffers are reset
// first.
func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()

	m := meta.Meta{
		Args:   append([]string{"easyconvert"}, args...),
		Cache:  h.cache,
		Stdout: &h.stdout,
		Stderr: &h.stderr,
	}
	app, err := InitApp(context.Background(), m)
	require.NoError(t, err)
	return app.Run(context.Background(), m.Args)
}

func TestRoman(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "roman", "10"))
	assert.Equal(t, "X\n", h.stdout.String())

	got, err := h.mr.Get("roman:10")
	require.NoError(t, err)
	assert.Equal(t, "X", got)

	// Second run is served from the cache.
	require.NoError(t, h.run(t, "roman", "10", "--stats"))
	assert.Equal(t, "X\n", h.stdout.String())
	assert.Contains(t, h.stderr.String(), "hits=1 misses=0")
}

func TestRoman_Errors(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"too large", []string{"roman", "4000"}, "out of range"},
		{"zero", []string{"roman", "0"}, "out of range"},
		{"not a number", []string{"roman", "ten"}, "not an integer"},
		{"negative after --", []string{"roman", "--", "-5"}, "-5 is out of range"},
		{"overflows int", []string{"roman", "99999999999999999999"}, "99999999999999999999 is out of range"},
		{"no argument", []string{"roman"}, "expected exactly one integer argument"},
		{"two arguments", []string{"roman", "1", "2"}, "got 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, h.stdout.String())
		})
	}

	assert.Empty(t, h.mr.Keys(), "failures are never cached")
}

func TestArabic(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "arabic", "CCXXXIV"))
	assert.Equal(t, "234\n", h.stdout.String())

	require.NoError(t, h.run(t, "arabic", "ccxxxiv", "--stats"))
	assert.Equal(t, "234\n", h.stdout.String())
	assert.Contains(t, h.stderr.String(), "hits=1")

	got, err := h.mr.Get("arabic:CCXXXIV")
	require.NoError(t, err)
	assert.Equal(t, "234", got)
}

func TestArabic_Invalid(t *testing.T) {
	h := newHarness(t)

	for _, in := range []string{"IIII", "ABC", "MMMM"} {
		err := h.run(t, "arabic", in)
		require.Error(t, err, in)
		assert.Contains(t, err.Error(), "invalid roman numeral", in)
	}
	assert.Empty(t, h.mr.Keys())
}

func TestConversion_OutputFormats(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "roman", "1994", "--output", "json"))
	var res map[string]any
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &res))
	assert.Equal(t, "MCMXCIV", res["output"])
	assert.Equal(t, "1994", res["input"])
	assert.Equal(t, false, res["cached"])

	require.NoError(t, h.run(t, "roman", "1994", "-o", "yaml"))
	assert.Contains(t, h.stdout.String(), "output: MCMXCIV\n")
	assert.Contains(t, h.stdout.String(), "cached: true\n")

	require.NoError(t, h.run(t, "arabic", "XIV", "--query", "value"))
	assert.Equal(t, "14\n", h.stdout.String())

	err := h.run(t, "roman", "5", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}

func TestConversion_CacheUnreachable(t *testing.T) {
	h := newHarness(t)
	h.mr.Close()

	require.NoError(t, h.run(t, "roman", "10"), "conversion must not need the cache")
	assert.Equal(t, "X\n", h.stdout.String())
	assert.Contains(t, h.stderr.String(), "warning: cache unreachable")
}

func TestConversion_CacheFailsAfterConnect(t *testing.T) {
	t.Setenv("EASYCONVERT_LOG", "")
	mylog.InitLogger()

	h := newHarness(t)
	// PING succeeds so the connection is made; reads and writes then fail.
	h.mr.Server().SetPreHook(func(c *server.Peer, cmd string, args ...string) bool {
		if strings.EqualFold(cmd, "GET") || strings.EqualFold(cmd, "SET") {
			c.WriteError("LOADING Redis is loading the dataset in memory")
			return true
		}
		return false
	})

	require.NoError(t, h.run(t, "roman", "10"))
	assert.Equal(t, "X\n", h.stdout.String())
	assert.Contains(t, h.stderr.String(), "warning: 2 cache operations failed; continuing without cache")

	require.NoError(t, h.run(t, "arabic", "X", "--stats"))
	assert.Equal(t, "10\n", h.stdout.String())
	assert.Contains(t, h.stderr.String(), "warning: 2 cache operations failed")
	assert.Contains(t, h.stderr.String(), "errors=2")
}

func TestWarnDegraded(t *testing.T) {
	var buf bytes.Buffer
	warnDegraded(&buf, convert.Stats{Hits: 3})
	assert.Empty(t, buf.String())

	warnDegraded(&buf, convert.Stats{CacheErrors: 1})
	assert.Equal(t, "warning: 1 cache operation failed; continuing without cache\n", buf.String())
}

func TestConversion_CacheDisabled(t *testing.T) {
	h := newHarness(t)
	h.cache = config.Cache{Enabled: false}

	require.NoError(t, h.run(t, "arabic", "MMXXV"))
	assert.Equal(t, "2025\n", h.stdout.String())
	assert.Empty(t, h.stderr.String())
	assert.Empty(t, h.mr.Keys())
}

func TestCacheStatus(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.mr.Set("roman:1", "I"))
	require.NoError(t, h.mr.Set("roman:2", "II"))

	require.NoError(t, h.run(t, "cache-status"))
	out := h.stdout.String()
	assert.Contains(t, out, "reachable: true\n")
	assert.Contains(t, out, "entries: 2\n")
	assert.Contains(t, out, "addr: "+h.cache.Addr())
	assert.Contains(t, out, "db: 0\n")

	require.NoError(t, h.run(t, "cache-status", "--query", "entry_count"))
	assert.Equal(t, "2\n", h.stdout.String())
}

func TestCacheStatus_Unreachable(t *testing.T) {
	h := newHarness(t)
	h.mr.Close()

	require.NoError(t, h.run(t, "cache-status"), "an unreachable cache is a report, not a failure")
	assert.Contains(t, h.stdout.String(), "reachable: false\n")
	assert.Contains(t, h.stdout.String(), "error: ")
	assert.NotContains(t, h.stdout.String(), "entries:")
}

func TestCacheStatus_Disabled(t *testing.T) {
	h := newHarness(t)
	h.cache = config.Cache{}

	require.NoError(t, h.run(t, "cache-status"))
	assert.Equal(t, "reachable: false\nerror: caching is disabled (CACHE_ENABLED)\n", h.stdout.String())
}

func TestCacheClearThenKeys(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "roman", "10"))
	require.NoError(t, h.run(t, "arabic", "X"))

	require.NoError(t, h.run(t, "cache-keys", "--sort"))
	assert.Equal(t, "arabic:X\nroman:10\n", h.stdout.String())

	require.NoError(t, h.run(t, "cache-clear"))
	assert.Contains(t, h.stdout.String(), "cache cleared: 2 entries removed")

	require.NoError(t, h.run(t, "cache-keys"))
	assert.Equal(t, "no keys\n", h.stdout.String())
}

func TestCacheKeys_Options(t *testing.T) {
	h := newHarness(t)
	for k, v := range map[string]string{
		"roman:1":   "I",
		"roman:2":   "II",
		"roman:3":   "III",
		"arabic:IV": "4",
	} {
		require.NoError(t, h.mr.Set(k, v))
	}

	require.NoError(t, h.run(t, "cache-keys", "--pattern", "roman:*", "--sort", "--limit", "2"))
	assert.Equal(t, "roman:1\nroman:2\n", h.stdout.String())
	assert.Contains(t, h.stderr.String(), "showing 2 of 3 keys")

	require.NoError(t, h.run(t, "cache-keys", "-p", "arabic:*", "--values", "--titles"))
	out := h.stdout.String()
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "arabic:IV")
	assert.Contains(t, out, "4")

	require.NoError(t, h.run(t, "cache-keys", "--values", "-o", "json", "--sort"))
	var listing keyListing
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &listing))
	assert.Equal(t, 4, listing.Total)
	require.Len(t, listing.Keys, 4)
	assert.Equal(t, keyEntry{Key: "arabic:IV", Value: "4"}, listing.Keys[0])

	err := h.run(t, "cache-keys", "--limit", "-1")
	require.Error(t, err)
}

func TestCacheDelete(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.mr.Set("roman:10", "X"))
	require.NoError(t, h.mr.Set("roman:11", "XI"))

	require.NoError(t, h.run(t, "cache-delete", "roman:10", "roman:99"))
	assert.Equal(t, "deleted roman:10\nnot found roman:99\n", h.stdout.String())
	assert.False(t, h.mr.Exists("roman:10"))
	assert.True(t, h.mr.Exists("roman:11"))

	require.NoError(t, h.run(t, "cache-delete", "roman:11", "-o", "json"))
	var res deleteResult
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &res))
	assert.Equal(t, deleteResult{Deleted: []string{"roman:11"}, Missing: []string{}}, res)

	err := h.run(t, "cache-delete")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected at least one key")
}

func TestCacheAdmin_Failures(t *testing.T) {
	h := newHarness(t)
	h.mr.Close()

	for _, c := range []string{"cache-clear", "cache-keys", "cache-delete"} {
		err := h.run(t, c, "roman:1")
		require.Error(t, err, c)
		assert.Contains(t, err.Error(), "cache unreachable", c)
	}

	h.cache = config.Cache{}
	for _, c := range []string{"cache-clear", "cache-keys", "cache-delete"} {
		err := h.run(t, c, "roman:1")
		assert.ErrorIs(t, err, ErrCacheDisabled, c)
	}
}

func TestCompletion(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "completion", "bash"))
	assert.Contains(t, h.stdout.String(), "complete -F _easyconvert easyconvert")

	require.NoError(t, h.run(t, "completion", "zsh"))
	assert.True(t, strings.HasPrefix(h.stdout.String(), "#compdef easyconvert"))

	require.Error(t, h.run(t, "completion", "fish"))
}

func TestInitApp_FlagsSorted(t *testing.T) {
	app, err := InitApp(context.Background(), meta.Meta{})
	require.NoError(t, err)

	names := []string{}
	for _, c := range app.Commands {
		names = append(names, c.Name)
		for i := 1; i < len(c.Flags); i++ {
			assert.LessOrEqual(t, c.Flags[i-1].Names()[0], c.Flags[i].Names()[0], c.Name)
		}
	}
	assert.Equal(t, []string{"roman", "arabic", "cache-status", "cache-clear", "cache-keys", "cache-delete", "completion"}, names)
}
