// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestString ensures the version string is assembled from its parts and that
// invalid characters are dropped.
func TestString(t *testing.T) {
	defer func(pre, build string) {
		PreRelease, BuildMetadata = pre, build
	}(PreRelease, BuildMetadata)

	tests := []struct {
		pre   string
		build string
		want  string
	}{
		{"", "", "0.1.0"},
		{"beta", "", "0.1.0-beta"},
		{"beta", "abc.123", "0.1.0-beta+abc.123"},
		{"", "abc", "0.1.0+abc"},
		{"be.ta!", "a_b+c", "0.1.0-beta+abc"},
		{"...", "", "0.1.0"},
	}

	for i, test := range tests {
		PreRelease, BuildMetadata = test.pre, test.build
		require.Equal(t, test.want, String(), "test #%d", i)
	}
}
