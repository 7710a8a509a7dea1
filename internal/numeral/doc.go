// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package numeral converts between Arabic integers and Roman numeral strings
// using classical subtractive notation. It is pure and holds no state.
package numeral
