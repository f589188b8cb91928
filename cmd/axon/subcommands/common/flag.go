package common

import (
	"os"
	"path/filepath"
)

type CommonFlags struct {
	Config string `flag:"config" help:"path to the cluster config file"`
}

// Flags detects the default cluster config file.
//
// # It searches, in order of precedence
//
// - environmental variable AXON_CONFIG
//
// - axon.yaml in from and its ancestors (a monorepo checkout
// carries one at its root)
//
// When nothing is found, Config is left empty and the well-known
// in-cluster endpoints apply.
func Flags(from string) (CommonFlags, error) {
	if c := os.Getenv("AXON_CONFIG"); c != "" {
		return CommonFlags{Config: c}, nil
	}

	if abs, err := filepath.Abs(from); err == nil {
		from = abs
	}
	for searchpath := from; ; {
		candidate := filepath.Join(searchpath, "axon.yaml")
		if s, err := os.Stat(candidate); err == nil && s.Mode().IsRegular() {
			return CommonFlags{Config: candidate}, nil
		}

		next := filepath.Dir(searchpath)
		if next == searchpath {
			break
		}
		searchpath = next
	}

	return CommonFlags{}, nil
}
