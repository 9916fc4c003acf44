//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Smoke builds the CLI and runs the classifier against a few canned
// affiliation strings. A quick end-to-end check that needs no network.
func Smoke() error {
	mg.Deps(Build)

	bin := filepath.Join(binDir, binName)
	cmd := exec.Command(bin, "classify",
		"Pfizer Inc., New York, NY, USA.",
		"Department of Biology, Harvard University, Cambridge, MA.",
		"Acme Therapeutics, South San Francisco, CA.",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("smoke run: %w", err)
	}
	return nil
}
