// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/easyconvert/internal/config"
)

type sample struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
	Cached bool   `json:"cached" yaml:"cached"`
}

func textOf(s sample) TextFunc {
	return func(w io.Writer) error {
		_, err := fmt.Fprintln(w, s.Output)
		return err
	}
}

func TestEmit(t *testing.T) {
	v := sample{Input: "10", Output: "X", Cached: true}

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"text", "text", "X\n"},
		{"default is text", "", "X\n"},
		{"json", "json", "{\n  \"input\": \"10\",\n  \"output\": \"X\",\n  \"cached\": true\n}\n"},
		{"yaml", "yaml", "input: \"10\"\noutput: X\ncached: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Emit(&buf, tt.format, "", v, textOf(v)))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestEmit_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Emit(&buf, "xml", "", sample{}, textOf(sample{}))
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestEmit_Query(t *testing.T) {
	v := map[string]any{
		"result": sample{Input: "XIV", Output: "14"},
		"keys":   []string{"roman:1", "roman:2"},
	}

	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, "json", "result.output", v, nil))
	assert.Equal(t, "14\n", buf.String())

	buf.Reset()
	require.NoError(t, Emit(&buf, "text", "keys", v, nil))
	assert.Equal(t, "roman:1\nroman:2\n", buf.String())

	buf.Reset()
	err := Emit(&buf, "text", "nope", v, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "matched nothing")
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "hello", want: "hello"},
		{name: "int", value: 42, want: "42"},
		{name: "int64", value: int64(7), want: "7"},
		{name: "float64", value: 42.5, want: "42.5"},
		{name: "bool true", value: true, want: "true"},
		{name: "bool false is zero value", value: false, want: ""},
		{name: "nil default", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: "-", want: "-"},
		{name: "slice", value: []string{"a", "b"}, want: `["a","b"]`},
		{name: "map", value: map[string]int{"x": 1}, want: `{"x":1}`},
		{name: "zero value with custom empty", value: 0, emptyVal: "N/A", want: "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableWriter(t *testing.T) {
	rows := [][]string{
		{"roman:10", "X"},
		{"arabic:XIV", "14"},
	}

	var buf bytes.Buffer
	require.NoError(t, TableWriter(&buf, []string{"KEY", "VALUE"}, rows, TableOptions{Titles: true, Padding: 2}))
	out := buf.String()

	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "VALUE")
	assert.Contains(t, out, "roman:10")
	assert.Contains(t, out, "arabic:XIV")
	assert.Less(t, strings.Index(out, "KEY"), strings.Index(out, "roman:10"))

	buf.Reset()
	require.NoError(t, TableWriter(&buf, []string{"KEY", "VALUE"}, rows, TableOptions{}))
	assert.NotContains(t, buf.String(), "KEY", "titles are off")

	buf.Reset()
	require.NoError(t, TableWriter(&buf, []string{"KEY"}, nil, TableOptions{Titles: true}))
	assert.Empty(t, buf.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTableWriter_WriteError(t *testing.T) {
	err := TableWriter(failWriter{}, []string{"KEY"}, [][]string{{"roman:1"}}, TableOptions{})
	assert.EqualError(t, err, "disk full")
}

func TestNewTableOptions_Defaults(t *testing.T) {
	opts := NewTableOptions(config.Type{}, true, false)
	assert.True(t, opts.Color)
	assert.False(t, opts.Titles)
	assert.Equal(t, 2, opts.Padding)
	assert.Equal(t, Colors{Title: "#f6be00", Even: "#ffffff", Odd: "#00c8f0"}, opts.Colors)
}

func TestNewTableOptions_FromConfig(t *testing.T) {
	cfg := config.Type{Data: map[string]interface{}{
		"padding": 4,
		"colors":  map[string]interface{}{"title": "#000000"},
	}}
	opts := NewTableOptions(cfg, false, true)
	assert.Equal(t, 4, opts.Padding)
	assert.Equal(t, "#000000", opts.Colors.Title)
	assert.Equal(t, "#ffffff", opts.Colors.Even)
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, ColorEnabled(true, &buf), "buffers are not terminals")
	assert.False(t, ColorEnabled(false, &buf))
}
