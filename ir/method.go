// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"

	"github.com/btcsuite/ergotree/stype"
)

// PropertyCall invokes a method without arguments on Obj.
type PropertyCall struct {
	Spanned
	Obj    Expr
	Method *stype.SMethod
}

// NewPropertyCall returns the call of method on obj, with the method signature
// specialized to the type of obj.
func NewPropertyCall(obj Expr, method *stype.SMethod) (*PropertyCall, error) {
	if len(method.Tpe.Dom) != 1 {
		str := fmt.Sprintf("method %s takes %d arguments", method.Name,
			len(method.Tpe.Dom)-1)
		return nil, irError(ErrInvalidNode, str)
	}
	m, err := method.SpecializeFor(obj.Tpe(), nil)
	if err != nil {
		return nil, err
	}
	return &PropertyCall{Obj: obj, Method: m}, nil
}

// Tpe returns the result type of the method.
func (n *PropertyCall) Tpe() stype.SType { return n.Method.Tpe.Range }

// OpCode returns OpPropertyCall.
func (n *PropertyCall) OpCode() OpCode { return OpPropertyCall }

func (n *PropertyCall) writeBody(w *SigmaByteWriter) error {
	w.PutByte(byte(n.Method.TypeCode))
	w.PutByte(byte(n.Method.MethodID))
	return w.WriteExpr(n.Obj)
}

// readMethod reads the type code and method id of a method reference.
func readMethod(r *SigmaByteReader) (*stype.SMethod, error) {
	code, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	id, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	return stype.MethodByID(stype.TypeCode(code), stype.MethodID(id))
}

func parsePropertyCall(r *SigmaByteReader, _ OpCode) (Expr, error) {
	method, err := readMethod(r)
	if err != nil {
		return nil, err
	}
	obj, err := r.ReadExpr()
	if err != nil {
		return nil, err
	}
	return NewPropertyCall(obj, method)
}

// MethodCall invokes a method with arguments on Obj.
type MethodCall struct {
	Spanned
	Obj    Expr
	Method *stype.SMethod
	Args   []Expr
}

// NewMethodCall returns the call of method on obj with args, with the method
// signature specialized to the argument types.
func NewMethodCall(obj Expr, method *stype.SMethod,
	args []Expr) (*MethodCall, error) {

	if len(method.Tpe.Dom) != len(args)+1 {
		str := fmt.Sprintf("method %s takes %d arguments, got %d",
			method.Name, len(method.Tpe.Dom)-1, len(args))
		return nil, irError(ErrInvalidNode, str)
	}
	argTypes := make([]stype.SType, len(args))
	for i, arg := range args {
		argTypes[i] = arg.Tpe()
	}
	m, err := method.SpecializeFor(obj.Tpe(), argTypes)
	if err != nil {
		return nil, err
	}
	return &MethodCall{Obj: obj, Method: m, Args: args}, nil
}

// Tpe returns the result type of the method.
func (n *MethodCall) Tpe() stype.SType { return n.Method.Tpe.Range }

// OpCode returns OpMethodCall.
func (n *MethodCall) OpCode() OpCode { return OpMethodCall }

func (n *MethodCall) writeBody(w *SigmaByteWriter) error {
	w.PutByte(byte(n.Method.TypeCode))
	w.PutByte(byte(n.Method.MethodID))
	if err := w.WriteExpr(n.Obj); err != nil {
		return err
	}
	return w.writeExprs(n.Args)
}

func parseMethodCall(r *SigmaByteReader, _ OpCode) (Expr, error) {
	method, err := readMethod(r)
	if err != nil {
		return nil, err
	}
	obj, err := r.ReadExpr()
	if err != nil {
		return nil, err
	}
	args, err := r.readExprs()
	if err != nil {
		return nil, err
	}
	return NewMethodCall(obj, method, args)
}
