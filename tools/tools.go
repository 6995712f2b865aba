//go:build tools

// Package tools pins the linters used on this module.
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
)
