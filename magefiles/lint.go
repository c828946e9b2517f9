// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binLint = "golangci-lint"

// lintPackages are the module's package trees. The magefiles carry the mage
// build tag and are vetted separately.
var lintPackages = []string{"./cmd/...", "./internal/...", "./pkg/..."}

// Vet runs go vet over the module packages and the tagged magefiles.
func Vet() error {
	if err := sh.RunV(binGo, append([]string{"vet"}, lintPackages...)...); err != nil {
		return err
	}
	return sh.RunV(binGo, "vet", "-tags", "mage", "./magefiles")
}

// Lint runs Vet, then golangci-lint over the module packages.
func Lint() error {
	mg.Deps(Vet)
	return sh.RunV(binLint, append([]string{"run"}, lintPackages...)...)
}
