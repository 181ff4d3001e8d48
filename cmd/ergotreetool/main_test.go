// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/ergotree/ir"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "f2a3d963df1591971cd4455b41cca9245bf684e1dc668049c4ca846" +
		"89807c6b2"
	otherSecret = "0101010101010101010101010101010101010101010101010101010" +
		"101010101"
	testPubKey = "03cb0d49e4eae7e57059a3da8ac52626d26fc11330af8fb093fa597" +
		"d8b93deb7b1"
	testMessage = "1dc01772ee0171f5f614c673e3c7fa1107a8cf727bdf5a6dadb379e" +
		"93c0d1d00"
	testProof = "bcb866ba434d5c77869ddcbc3f09ddd62dd2d2539bf99076674d1ae0c3" +
		"2338ea95581fdc18a3b66789904938ac641eba1a66d234070207a2"
)

// treeHex returns the hex encoding of a tree rooted at root.
func treeHex(t *testing.T, root ir.Expr) string {
	t.Helper()

	tree, err := ir.NewErgoTree(ir.HeaderConstantSegregationFlag, root)
	require.NoError(t, err)
	return hex.EncodeToString(tree.Bytes())
}

// TestRun ensures each action produces the expected output.
func TestRun(t *testing.T) {
	t.Parallel()

	p2pk := "0008cd" + testPubKey
	height, err := ir.NewGlobalVar(ir.OpHeight)
	require.NoError(t, err)
	lt, err := ir.NewBinOp(ir.OpLt, height, ir.ConstInt(50))
	require.NoError(t, err)
	heightCheck := treeHex(t, lt)

	tests := []struct {
		name string
		cfg  config
		want []string
	}{{
		name: "print",
		cfg:  config{Tree: p2pk, Print: true},
		want: []string{"proveDlog(" + testPubKey + ")"},
	}, {
		name: "reduce p2pk",
		cfg:  config{Tree: p2pk, Reduce: true, Height: 1},
		want: []string{"proveDlog(" + testPubKey + ")", "cost: "},
	}, {
		name: "reduce below height",
		cfg:  config{Tree: heightCheck, Reduce: true, Height: 10},
		want: []string{"TrivialProp(true)"},
	}, {
		name: "reduce above height",
		cfg:  config{Tree: heightCheck, Reduce: true, Height: 100},
		want: []string{"TrivialProp(false)", "Pretty printed expr:",
			"HEIGHT < 50"},
	}, {
		name: "verify known proof",
		cfg: config{Tree: p2pk, Verify: true, Proof: testProof,
			Message: testMessage, Height: 1},
		want: []string{"true"},
	}, {
		name: "verify other message",
		cfg: config{Tree: p2pk, Verify: true, Proof: testProof,
			Message: "00", Height: 1},
		want: []string{"false"},
	}}

	for _, test := range tests {
		var out bytes.Buffer
		err := run(&test.cfg, &out)
		require.NoError(t, err, test.name)
		for _, want := range test.want {
			require.Contains(t, out.String(), want, test.name)
		}
	}
}

// TestRunSignVerify ensures a proof produced by --sign is accepted by
// --verify.
func TestRunSignVerify(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	signCfg := config{
		Tree:    "0008cd" + testPubKey,
		Sign:    true,
		Secrets: []string{otherSecret},
		Message: testMessage,
		Height:  1,
	}

	// The secret does not match the key, so proving fails.
	require.Error(t, run(&signCfg, &out))

	// Prove with the secret of the key instead.
	signCfg.Secrets = append(signCfg.Secrets, testSecret)
	out.Reset()
	require.NoError(t, run(&signCfg, &out))
	proof := strings.TrimSpace(out.String())
	require.Len(t, proof, 2*56)

	out.Reset()
	verifyCfg := config{
		Tree:    signCfg.Tree,
		Verify:  true,
		Proof:   proof,
		Message: testMessage,
		Height:  1,
	}
	require.NoError(t, run(&verifyCfg, &out))
	require.Equal(t, "true\n", out.String())
}

// TestRunErrors ensures malformed input is reported.
func TestRunErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config
	}{
		{"tree not hex", config{Tree: "zz", Print: true}},
		{"truncated tree", config{Tree: "0008cd03", Print: true}},
		{"message not hex", config{Tree: "0008cd" + testPubKey,
			Reduce: true, Message: "0"}},
		{"proof not hex", config{Tree: "0008cd" + testPubKey,
			Verify: true, Proof: "xy"}},
		{"short secret", config{Tree: "0008cd" + testPubKey,
			Sign: true, Secrets: []string{"0102"}}},
		{"cost limit", config{Tree: "0008cd" + testPubKey,
			Reduce: true, CostLimit: 1}},
	}

	for _, test := range tests {
		var out bytes.Buffer
		require.Error(t, run(&test.cfg, &out), test.name)
	}
}

// TestValidateConfig ensures conflicting or incomplete actions are rejected
// and that printing is the default action.
func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfg       config
		wantErr   bool
		wantPrint bool
	}{
		{"no tree", config{Print: true}, true, true},
		{"sign and verify", config{Tree: "00", Sign: true, Verify: true,
			Proof: "00", Secrets: []string{"00"}}, true, false},
		{"verify without proof", config{Tree: "00", Verify: true}, true,
			false},
		{"sign without secret", config{Tree: "00", Sign: true}, true,
			false},
		{"default action", config{Tree: "00"}, false, true},
		{"reduce only", config{Tree: "00", Reduce: true}, false, false},
	}

	for _, test := range tests {
		err := validateConfig(&test.cfg)
		if test.wantErr {
			require.Error(t, err, test.name)
			continue
		}
		require.NoError(t, err, test.name)
		require.Equal(t, test.wantPrint, test.cfg.Print, test.name)
	}
}
