// Package config resolves the interpreter's two command-line flags
// into a validated run configuration, modeled on the teacher's small
// validate-and-construct config types (internal/audio/config.go).
package config

import "github.com/ipp23/ippcode23/internal/ipperr"

// Config is a fully resolved run configuration: an empty path means
// "read this stream from standard input".
type Config struct {
	SourcePath string
	InputPath  string
	Verbose    bool
}

// Resolve implements the joint constraint from spec §6: at least one
// of source/input must be given explicitly; if only one is, the other
// defaults to standard input (represented here as the empty string,
// which internal/loader and internal/ioline both treat as "use
// stdin").
func Resolve(source, input string, verbose bool) (*Config, error) {
	if source == "" && input == "" {
		return nil, ipperr.New(ipperr.MissingArguments, "one of --source or --input is required")
	}
	return &Config{SourcePath: source, InputPath: input, Verbose: verbose}, nil
}
