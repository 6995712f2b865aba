//go:build race

package probes

const raceBuild = true
