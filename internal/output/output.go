// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Formats accepted by --output.
var Formats = []string{"text", "json", "yaml"}

// TextFunc renders the plain-text form of a result.
type TextFunc func(io.Writer) error

// Emit writes v in the requested format. text is used for "text" (and an
// empty format). When query is non-empty it is a gjson path evaluated against
// the JSON form of v, and only the selected value is printed.
func Emit(w io.Writer, format string, query string, v any, text TextFunc) error {
	if query != "" {
		return emitQuery(w, query, v)
	}

	switch format {
	case "json":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	case "", "text":
		return text(w)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func emitQuery(w io.Writer, query string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal json: %w", err)
	}
	res := gjson.GetBytes(b, query)
	if !res.Exists() {
		return fmt.Errorf("query %q matched nothing", query)
	}
	if res.IsArray() {
		for _, r := range res.Array() {
			fmt.Fprintln(w, r.String())
		}
		return nil
	}
	_, err = fmt.Fprintln(w, res.String())
	return err
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
