// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// printIndent is the number of spaces per nesting level.
const printIndent = 2

// printer renders expressions while tracking the output position so that
// every printed node can be given its source span.
type printer struct {
	buf    strings.Builder
	indent int
}

func (p *printer) pos() int {
	return p.buf.Len()
}

func (p *printer) write(s string) {
	p.buf.WriteString(s)
}

func (p *printer) writef(format string, args ...interface{}) {
	fmt.Fprintf(&p.buf, format, args...)
}

func (p *printer) newline() {
	p.write("\n")
	p.write(strings.Repeat(" ", p.indent))
}

// Print renders e in ErgoScript syntax.  It returns a copy of e in which every
// node carries its span in the returned text.  e itself is not modified.
func Print(e Expr) (Expr, string, error) {
	var p printer
	spanned, err := p.print(e)
	if err != nil {
		return nil, "", err
	}
	return spanned, p.buf.String(), nil
}

// DebugTree returns a dump of the full node structure of e.
func DebugTree(e Expr) string {
	return spew.Sdump(e)
}

// isInfix reports whether e prints as an infix operation and so needs
// parentheses when it is an operand.
func isInfix(e Expr) bool {
	switch n := e.(type) {
	case *BinOp:
		return binOps[n.Kind].form == formInfix
	case *SigmaConj:
		return true
	}
	return false
}

func (p *printer) print(e Expr) (Expr, error) {
	start := p.pos()
	var children []Expr
	var err error

	// sub prints a child and collects its spanned copy.
	sub := func(child Expr) {
		if err != nil {
			return
		}
		var spanned Expr
		if spanned, err = p.print(child); err == nil {
			children = append(children, spanned)
		}
	}
	// operand prints a child, parenthesized when it is infix.
	operand := func(child Expr) {
		if isInfix(child) {
			p.write("(")
			sub(child)
			p.write(")")
			return
		}
		sub(child)
	}
	list := func(items []Expr, sep string) {
		for i, item := range items {
			if i > 0 {
				p.write(sep)
			}
			sub(item)
		}
	}

	switch n := e.(type) {
	case *Constant:
		p.write(FormatValue(n.V))

	case *ConstantPlaceholder:
		p.writef("placeholder[%v](%d)", n.Type, n.ID)

	case *GlobalVar:
		p.write(globalVarTypes[n.Kind].name)

	case *ValUse:
		p.writef("v%d", n.ID)

	case *GetVar:
		p.writef("getVar[%v](%d)", n.VarTpe, n.VarID)

	case *Collection:
		p.writef("Coll[%v](", n.ElemTpe)
		list(n.Items, ", ")
		p.write(")")

	case *Tuple:
		p.write("(")
		list(n.Items, ", ")
		p.write(")")

	case *SelectField:
		operand(n.Input)
		p.writef("._%d", n.FieldIndex)

	case *UnaryOp:
		info := unaryOps[n.Kind]
		switch info.form {
		case formPrefix:
			p.write(info.name)
			operand(n.Input)
		case formProp:
			operand(n.Input)
			p.write("." + info.name)
		default:
			p.write(info.name + "(")
			sub(n.Input)
			p.write(")")
		}

	case *BinOp:
		info := binOps[n.Kind]
		switch info.form {
		case formInfix:
			operand(n.Left)
			p.write(" " + info.name + " ")
			operand(n.Right)
		case formProp:
			operand(n.Left)
			p.write("." + info.name + "(")
			sub(n.Right)
			p.write(")")
		default:
			p.write(info.name + "(")
			sub(n.Left)
			p.write(", ")
			sub(n.Right)
			p.write(")")
		}

	case *If:
		p.write("if (")
		sub(n.Condition)
		p.write(") {")
		p.indent += printIndent
		p.newline()
		sub(n.TrueBranch)
		p.indent -= printIndent
		p.newline()
		p.write("} else {")
		p.indent += printIndent
		p.newline()
		sub(n.FalseBranch)
		p.indent -= printIndent
		p.newline()
		p.write("}")

	case *ByIndex:
		operand(n.Input)
		if n.Default == nil {
			p.write("(")
			sub(n.Index)
			p.write(")")
			break
		}
		p.write(".getOrElse(")
		sub(n.Index)
		p.write(", ")
		sub(n.Default)
		p.write(")")

	case *ExtractRegisterAs:
		operand(n.Input)
		p.writef(".R%d[%v]", n.RegisterID, n.ElemTpe)

	case *CreateProveDhTuple:
		p.write("proveDHTuple(")
		list([]Expr{n.G, n.H, n.U, n.V}, ", ")
		p.write(")")

	case *SigmaConj:
		sep := " && "
		if n.Kind == OpSigmaOr {
			sep = " || "
		}
		for i, item := range n.Items {
			if i > 0 {
				p.write(sep)
			}
			operand(item)
		}

	case *NumericCast:
		operand(n.Input)
		p.write(".to" + n.Type.String())

	case *ValDef:
		p.writef("val v%d = ", n.ID)
		sub(n.RHS)

	case *BlockValue:
		p.write("{")
		p.indent += printIndent
		for _, item := range n.Items {
			p.newline()
			sub(item)
		}
		p.newline()
		sub(n.Result)
		p.indent -= printIndent
		p.newline()
		p.write("}")

	case *PropertyCall:
		operand(n.Obj)
		p.write("." + n.Method.Name)

	case *MethodCall:
		operand(n.Obj)
		p.write("." + n.Method.Name + "(")
		list(n.Args, ", ")
		p.write(")")

	default:
		return nil, irError(ErrInvalidNode, fmt.Sprintf("cannot print %T", e))
	}
	if err != nil {
		return nil, err
	}

	i := 0
	res, err := mapChildren(e, func(Expr) (Expr, error) {
		child := children[i]
		i++
		return child, nil
	})
	if err != nil {
		return nil, err
	}
	res.setSpan(SourceSpan{Offset: start, Length: p.pos() - start})
	return res, nil
}
