//go:build !debug

package probes

const debugBuild = false
