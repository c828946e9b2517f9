// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Package main provides build targets for the patchmaker project using Mage.
//
// Usage:
//
//	mage build        Compile the patchmaker binary to bin/
//	mage test:all     Run every test
//	mage test:unit    Run tests in short mode
//	mage test:cover   Run tests with a coverage profile
//	mage vet          Run go vet, magefiles included
//	mage lint         Run vet, then golangci-lint
//	mage clean        Remove build artifacts
//	mage install      Install patchmaker to GOPATH/bin
//	mage stats        Print Go lines of code
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "patchmaker"
	binaryDir  = "bin"
	cmdDir     = "./cmd/patchmaker"
)

// Build compiles the patchmaker binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	if err := os.Remove(coverProfile); err != nil && !os.IsNotExist(err) {
		return err
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
