// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2018 The Decred developers
// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package version holds the version of ergotreetool.
package version

import (
	"fmt"
	"strings"
)

const (
	// preReleaseAlphabet defines the allowed characters for the pre-release
	// portion of a semantic version string.
	preReleaseAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

	// buildAlphabet defines the allowed characters for the build portion of
	// a semantic version string.
	buildAlphabet = preReleaseAlphabet + "."
)

// These constants define the tool version and follow the semantic versioning
// 2.0.0 spec (http://semver.org/).
const (
	Major uint = 0
	Minor uint = 1
	Patch uint = 0
)

var (
	// PreRelease may be overridden at build time with
	// '-ldflags "-X github.com/btcsuite/ergotree/internal/version.PreRelease=foo"'.
	// Characters outside preReleaseAlphabet are dropped.
	PreRelease = "beta"

	// BuildMetadata may be overridden at build time like PreRelease.
	// Characters outside buildAlphabet are dropped.
	BuildMetadata = ""
)

// String returns the version, for example 0.1.0-beta+abc123.  Empty
// pre-release or build parts are omitted.
func String() string {
	version := fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)
	if pre := normalize(PreRelease, preReleaseAlphabet); pre != "" {
		version += "-" + pre
	}
	if build := normalize(BuildMetadata, buildAlphabet); build != "" {
		version += "+" + build
	}
	return version
}

// normalize strips str of every character not in alphabet.
func normalize(str, alphabet string) string {
	var sb strings.Builder
	for _, r := range str {
		if strings.ContainsRune(alphabet, r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
