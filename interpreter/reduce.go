// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package interpreter

import (
	"fmt"

	"github.com/btcsuite/ergotree/ir"
	"github.com/btcsuite/ergotree/sigma"
)

// Diagnostics holds information about a reduction that helps explaining its
// outcome.
type Diagnostics struct {
	// PrettyPrintedExpr is the printed script.  It is only set when the
	// script reduced to a trivially false proposition.
	PrettyPrintedExpr string
}

// String returns the diagnostics in human readable form.
func (d Diagnostics) String() string {
	if d.PrettyPrintedExpr == "" {
		return ""
	}
	return "Pretty printed expr:\n" + d.PrettyPrintedExpr + "\n"
}

// ReductionResult is the outcome of reducing a script to a proposition.
type ReductionResult struct {
	// SigmaProp is the statement to be proven.  A Boolean result is
	// represented as a TrivialProp.
	SigmaProp sigma.SigmaBoolean

	// Cost is the accumulated cost of the evaluation.
	Cost uint64

	// Diag carries diagnostic information.
	Diag Diagnostics
}

// reduce evaluates expr and converts its value to a proposition.
func reduce(expr ir.Expr, ctx *Context) (*ReductionResult, error) {
	v, cost, err := Eval(expr, ctx)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case ir.Boolean:
		return &ReductionResult{
			SigmaProp: sigma.TrivialProp(v),
			Cost:      cost,
		}, nil

	case ir.SigmaProp:
		return &ReductionResult{SigmaProp: v.V, Cost: cost}, nil
	}

	str := fmt.Sprintf("script reduced to a value of type %v, only "+
		"Boolean and SigmaProp are valid results", ir.TypeOf(v))
	return nil, enrich(evalError(ErrInvalidResultType, str), expr.Span())
}

// ReduceToCrypto evaluates expr in ctx to the proposition that must be proven
// to spend the box.  The script must evaluate to a Boolean or a SigmaProp.
//
// Evaluation is first attempted on expr as given.  Only when it fails is the
// script printed and evaluated again on the printed tree, so the returned
// error is a *SpannedWithSourceError that shows the failing part of the
// printed source.  A script that reduces to a trivially false proposition
// is not an error, but it is printed likewise and the text is returned in
// the diagnostics of the result.
func ReduceToCrypto(expr ir.Expr, ctx *Context) (*ReductionResult, error) {
	log.Tracef("Reducing %v", newLogClosure(func() string {
		return ir.DebugTree(expr)
	}))
	res, err := reduce(expr, ctx)
	if err == nil {
		log.Tracef("Reduced to %v with cost %d", res.SigmaProp, res.Cost)
		if v, ok := sigma.IsTrivial(res.SigmaProp); ok && !v {
			_, text, err := ir.Print(expr)
			if err != nil {
				return nil, evalError(ErrMisc, err.Error())
			}
			res.Diag.PrettyPrintedExpr = text
			log.Debugf("Script reduced to false: %v", res.Diag)
		}
		return res, nil
	}

	log.Debugf("Reduction failed: %v", err)
	spanned, text, printErr := ir.Print(expr)
	if printErr != nil {
		str := fmt.Sprintf("%v (printing the script failed: %v)", err,
			printErr)
		return nil, evalError(ErrMisc, str)
	}
	if _, spannedErr := reduce(spanned, ctx); spannedErr != nil {
		err = spannedErr
	}
	return nil, withSource(err, text)
}

// ExtractSigmaBoolean returns the proposition of an expression that is a
// SigmaProp constant.
func ExtractSigmaBoolean(expr ir.Expr) (sigma.SigmaBoolean, error) {
	c, ok := expr.(*ir.Constant)
	if !ok {
		str := fmt.Sprintf("expected a SigmaProp constant, got %T", expr)
		return nil, evalError(ErrInvalidResultType, str)
	}
	sp, ok := c.V.(ir.SigmaProp)
	if !ok {
		str := fmt.Sprintf("expected a SigmaProp constant, got %v",
			c.Type)
		return nil, evalError(ErrInvalidResultType, str)
	}
	return sp.V, nil
}
