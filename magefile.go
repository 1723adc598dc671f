//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Build

// Build compiles the aerdev binary into bin/.
func Build() error {
	return sh.RunV("go", "build", "-o", "bin/aerdev", ".")
}

// Test runs the test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Check builds and then tests.
func Check() {
	mg.SerialDeps(Build, Test)
}
