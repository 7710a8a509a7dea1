// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// easyconvert is the main package for the easyconvert command line tool. It
// loads configuration, wires the CLI, delegates to internal packages, and
// serves as the entry point.
package main
