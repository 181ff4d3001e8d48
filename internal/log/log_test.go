// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package log

import (
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
)

// TestParseAndSetDebugLevels ensures debug level strings set the expected
// subsystem levels and that malformed strings are rejected.
func TestParseAndSetDebugLevels(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		want   map[string]btclog.Level
		hasErr bool
	}{{
		name:  "single level",
		level: "debug",
		want: map[string]btclog.Level{
			"IRPS": btclog.LevelDebug,
			"EVAL": btclog.LevelDebug,
			"SGMA": btclog.LevelDebug,
			"TOOL": btclog.LevelDebug,
		},
	}, {
		name:  "pairs",
		level: "EVAL=trace,SGMA=error",
		want: map[string]btclog.Level{
			"IRPS": btclog.LevelInfo,
			"EVAL": btclog.LevelTrace,
			"SGMA": btclog.LevelError,
			"TOOL": btclog.LevelInfo,
		},
	}, {
		name:   "invalid level",
		level:  "verbose",
		hasErr: true,
	}, {
		name:   "invalid pair",
		level:  "EVAL=trace,SGMA",
		hasErr: true,
	}, {
		name:   "unknown subsystem",
		level:  "PEER=info",
		hasErr: true,
	}, {
		name:   "invalid level in pair",
		level:  "EVAL=loud",
		hasErr: true,
	}}

	for _, test := range tests {
		SetLogLevels("info")
		err := ParseAndSetDebugLevels(test.level)
		if test.hasErr {
			require.Error(t, err, test.name)
			continue
		}
		require.NoError(t, err, test.name)
		for id, level := range test.want {
			require.Equal(t, level, SubsystemLoggers[id].Level(),
				"%s: subsystem %s", test.name, id)
		}
	}
}

// TestSupportedSubsystems ensures the subsystems are returned sorted.
func TestSupportedSubsystems(t *testing.T) {
	t.Parallel()

	want := []string{"EVAL", "IRPS", "SGMA", "TOOL"}
	require.Equal(t, want, SupportedSubsystems())
}
