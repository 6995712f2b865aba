package probes

import "runtime"

// Version of this module, reported in the user agent.
const Version = "0.1.0"

// UserAgent describes the runtime environment collecting probes, for
// example "Go/go1.23.0 (linux; amd64) probes/0.1.0".
func UserAgent() string {
	return "Go/" + runtime.Version() + " (" + runtime.GOOS + "; " + runtime.GOARCH + ") probes/" + Version
}
