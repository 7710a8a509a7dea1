// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package convert runs numeral conversions with cache-aside semantics: the
// cache is consulted first, results are stored only after a successful
// computation, and an unavailable cache never changes the answer.
package convert
