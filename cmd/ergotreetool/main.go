// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// ergotreetool inspects, reduces, proves and verifies ErgoTree scripts.
//
// The spending context is synthetic: a single input box guarded by the tree,
// spent into a single output at the configured height.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/ergotree/internal/log"
	"github.com/btcsuite/ergotree/internal/version"
	"github.com/btcsuite/ergotree/interpreter"
	"github.com/btcsuite/ergotree/ir"
	"github.com/btcsuite/ergotree/sigmaprotocol"
)

// syntheticBoxValue is the value of the box in the synthetic context.
const syntheticBoxValue = 1000000000

// decodeHex decodes the hex encoded value of the named option.
func decodeHex(name, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex for --%s: %v", name, err)
	}
	return b, nil
}

// syntheticContext returns a spending context with a single input guarded by
// tree and a single output.
func syntheticContext(cfg *config, tree *ir.ErgoTree) (*interpreter.Context, error) {
	self, err := ir.NewBox(syntheticBoxValue, tree, nil, nil, cfg.Height,
		ir.Digest32{}, 0)
	if err != nil {
		return nil, err
	}
	ctx, err := interpreter.NewContext(self, []*ir.Box{self},
		[]*ir.Box{self}, nil, cfg.Height,
		interpreter.PreHeader{Height: cfg.Height})
	if err != nil {
		return nil, err
	}
	ctx.CostLimit = cfg.CostLimit
	return ctx, nil
}

// run performs the actions selected by cfg and writes their results to w.
func run(cfg *config, w io.Writer) error {
	raw, err := decodeHex("tree", cfg.Tree)
	if err != nil {
		return err
	}
	tree, err := ir.ParseErgoTree(raw)
	if err != nil {
		return err
	}
	log.ToolLog.Debugf("Parsed tree of version %d with %d constants",
		tree.Version(), len(tree.Constants))

	if cfg.Print {
		expr, err := tree.Proposition()
		if err != nil {
			return err
		}
		_, text, err := ir.Print(expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, text)
	}

	if !cfg.Reduce && !cfg.Verify && !cfg.Sign {
		return nil
	}
	ctx, err := syntheticContext(cfg, tree)
	if err != nil {
		return err
	}
	message, err := decodeHex("message", cfg.Message)
	if err != nil {
		return err
	}

	if cfg.Reduce {
		expr, err := tree.Proposition()
		if err != nil {
			return err
		}
		res, err := interpreter.ReduceToCrypto(expr, ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%v\ncost: %d\n", res.SigmaProp, res.Cost)
		if diag := res.Diag.String(); diag != "" {
			fmt.Fprint(w, diag)
		}
	}

	if cfg.Sign {
		secrets := make([]sigmaprotocol.PrivateInput, 0, len(cfg.Secrets))
		for _, s := range cfg.Secrets {
			b, err := decodeHex("secret", s)
			if err != nil {
				return err
			}
			secret, err := sigmaprotocol.DlogProverInputFromBytes(b)
			if err != nil {
				return err
			}
			secrets = append(secrets, secret)
		}
		res, err := sigmaprotocol.NewProver(secrets...).Prove(tree, ctx,
			message)
		if err != nil {
			return err
		}
		log.ToolLog.Infof("Proved the script with cost %d", res.Cost)
		fmt.Fprintln(w, hex.EncodeToString(res.Proof))
	}

	if cfg.Verify {
		proof, err := decodeHex("proof", cfg.Proof)
		if err != nil {
			return err
		}
		verifier := sigmaprotocol.NewVerifier(&sigmaprotocol.Config{
			ProofCache: sigmaprotocol.NewProofCache(0),
		})
		res, err := verifier.Verify(tree, ctx, proof, message)
		if err != nil {
			return err
		}
		log.ToolLog.Infof("Verified the proof with cost %d", res.Cost)
		fmt.Fprintln(w, res.Result)
		if diag := res.Diag.String(); diag != "" {
			fmt.Fprint(w, diag)
		}
	}

	return nil
}

// realMain is the real main function for the tool.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is
// called.
func realMain() error {
	// Load configuration and parse command line.
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() {
		if log.LogRotator != nil {
			log.LogRotator.Close()
		}
	}()

	if cfg.ShowVersion {
		fmt.Printf("ergotreetool version %s\n", version.String())
		return nil
	}

	if err := run(cfg, os.Stdout); err != nil {
		log.ToolLog.Errorf("%v", err)
		return err
	}
	return nil
}

func main() {
	if err := realMain(); err != nil {
		os.Exit(1)
	}
}
