//go:build mage

// Package main provides build targets for fluidcard using Mage.
//
// Usage:
//
//	mage build       Compile the fluidcard binary to bin/
//	mage test        Run all tests
//	mage race        Run all tests with the race detector
//	mage lint        Run golangci-lint
//	mage frames      Render both transitions to frames/
//	mage clean       Remove build artifacts
//	mage install     Install fluidcard to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "fluidcard"
	binaryDir  = "bin"
	cmdDir     = "./cmd/fluidcard"
	framesDir  = "frames"
	cliPkg     = "honnef.co/go/fluidcard/internal/cli"
)

// ldflags stamps the version and commit into the binary.
func ldflags() string {
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil || commit == "" {
		commit = "unknown"
	}
	return strings.Join([]string{
		fmt.Sprintf("-X %s.Version=%s", cliPkg, version),
		fmt.Sprintf("-X %s.Commit=%s", cliPkg, commit),
	}, " ")
}

// Build compiles the fluidcard binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs all tests with the race detector.
func Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Frames renders both transitions as PNG and SVG frames.
func Frames() error {
	mg.Deps(Build)
	bin := filepath.Join(binaryDir, binaryName)
	for _, dir := range []string{"expand", "collapse"} {
		out := filepath.Join(framesDir, dir)
		if err := sh.RunV(bin, "render", "--direction", dir, "--format", "both", "--label", dir, "--out", out); err != nil {
			return err
		}
	}
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	for _, dir := range []string{binaryDir, framesDir} {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
