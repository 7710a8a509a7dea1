// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package numeral

import (
	"fmt"
	"strings"
)

// The representable range under classical notation. There is no symbol for
// zero and nothing above MMMCMXCIX without overlines.
const (
	MinValue = 1
	MaxValue = 3999
)

// table drives the greedy encoder. Order matters: largest value first.
var table = []struct {
	value  int
	symbol string
}{
	{1000, "M"},
	{900, "CM"},
	{500, "D"},
	{400, "CD"},
	{100, "C"},
	{90, "XC"},
	{50, "L"},
	{40, "XL"},
	{10, "X"},
	{9, "IX"},
	{5, "V"},
	{4, "IV"},
	{1, "I"},
}

var symbols = map[rune]int{
	'I': 1,
	'V': 5,
	'X': 10,
	'L': 50,
	'C': 100,
	'D': 500,
	'M': 1000,
}

// InRange reports whether n can be written as a Roman numeral.
func InRange(n int) bool {
	return n >= MinValue && n <= MaxValue
}

// Normalize trims surrounding whitespace and upper-cases s. Decode applies it
// to its input, so callers only need it when they want the canonical key.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Encode returns the minimal-length Roman numeral for n.
func Encode(n int) (string, error) {
	if !InRange(n) {
		return "", &RangeError{Value: n}
	}

	var b strings.Builder
	for _, t := range table {
		for n >= t.value {
			b.WriteString(t.symbol)
			n -= t.value
		}
	}
	return b.String(), nil
}

// Decode parses a Roman numeral. Input is case-insensitive. Only canonical
// forms are accepted, so IIII, VV and IC are all rejected even though a naive
// accumulator would assign them a value.
func Decode(s string) (int, error) {
	in := Normalize(s)
	if in == "" {
		return 0, &FormatError{Input: s, Reason: "empty input"}
	}

	runes := []rune(in)
	total := 0
	for i, r := range runes {
		v, ok := symbols[r]
		if !ok {
			return 0, &FormatError{
				Input:  s,
				Reason: fmt.Sprintf("unexpected symbol %q at position %d", r, i+1),
			}
		}

		// A smaller symbol immediately before a larger one is subtracted.
		if i+1 < len(runes) {
			if next, ok := symbols[runes[i+1]]; ok && v < next {
				total -= v
				continue
			}
		}
		total += v
	}

	if !InRange(total) {
		return 0, &FormatError{
			Input:  s,
			Reason: fmt.Sprintf("value %d is outside %d..%d", total, MinValue, MaxValue),
		}
	}

	canonical, _ := Encode(total)
	if canonical != in {
		return 0, &FormatError{
			Input:  s,
			Reason: fmt.Sprintf("not in canonical form, did you mean %s?", canonical),
		}
	}

	return total, nil
}
