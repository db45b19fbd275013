// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Package main provides build targets for the yama project using Mage.
//
// Usage:
//
//	mage build       Compile the yama binary to bin/
//	mage test:all    Run every test with the race detector
//	mage test:unit   Run tests in short mode
//	mage test:cover  Write coverage.out and print per-function coverage
//	mage lint        Run golangci-lint
//	mage clean       Remove build artifacts
//	mage install     Install yama to GOPATH/bin
//	mage serve       Build and run `yama serve`
//	mage stats       Print Go LOC and documentation word counts
package main
