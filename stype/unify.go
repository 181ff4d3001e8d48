// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stype

import (
	"fmt"
)

// TypeSubst maps free type variables to the types they are bound to.
type TypeSubst map[STypeVar]SType

// Apply returns t with every bound type variable replaced.
func (s TypeSubst) Apply(t SType) SType {
	if len(s) == 0 {
		return t
	}
	switch t := t.(type) {
	case STypeVar:
		if bound, ok := s[t]; ok {
			return bound
		}
		return t

	case *SColl:
		return NewSColl(s.Apply(t.Elem))

	case *SOption:
		return NewSOption(s.Apply(t.Elem))

	case *STuple:
		return &STuple{Items: s.applyList(t.Items)}

	case *SFunc:
		var params []STypeVar
		for _, p := range t.TypeParams {
			if _, ok := s[p]; !ok {
				params = append(params, p)
			}
		}
		return &SFunc{
			Dom:        s.applyList(t.Dom),
			Range:      s.Apply(t.Range),
			TypeParams: params,
		}
	}
	return t
}

func (s TypeSubst) applyList(items []SType) []SType {
	res := make([]SType, len(items))
	for i, item := range items {
		res[i] = s.Apply(item)
	}
	return res
}

// Unify finds a substitution of the type variables in t1 such that applying it
// makes t1 compatible with t2.
//
// Any on the left unifies with everything and Boolean on the left unifies
// with SigmaProp.  Neither rule holds with the arguments swapped.
func Unify(t1, t2 SType) (TypeSubst, error) {
	emptySubst := TypeSubst{}

	if v1, ok := t1.(STypeVar); ok {
		if v2, ok := t2.(STypeVar); ok {
			if v1 == v2 {
				return emptySubst, nil
			}
			return nil, mismatch(t1, t2)
		}
		return TypeSubst{v1: t2}, nil
	}

	if s1, ok := t1.(SimpleType); ok {
		if s2, ok := t2.(SimpleType); ok && s1 == s2 {
			return emptySubst, nil
		}
	}

	switch t1 := t1.(type) {
	case *SColl:
		switch t2 := t2.(type) {
		case *SColl:
			return Unify(t1.Elem, t2.Elem)
		case *STuple:
			return Unify(t1.Elem, SAny)
		}

	case *STuple:
		if t2, ok := t2.(*STuple); ok && len(t1.Items) == len(t2.Items) {
			return UnifyMany(t1.Items, t2.Items)
		}

	case *SOption:
		if t2, ok := t2.(*SOption); ok {
			return Unify(t1.Elem, t2.Elem)
		}
	}

	switch {
	case t1 == SAny:
		return emptySubst, nil

	// Collections mixing Boolean and SigmaProp items are typed by their
	// first item.
	case t1 == SBoolean && t2 == SSigmaProp:
		return emptySubst, nil
	}

	return nil, mismatch(t1, t2)
}

func mismatch(t1, t2 SType) error {
	str := fmt.Sprintf("cannot unify %v and %v", t1, t2)
	return typeError(ErrUnifyMismatch, str)
}

// UnifyMany unifies the lists pairwise and merges the substitutions.  Every
// type variable must be bound to the same type by every pair.
func UnifyMany(items1, items2 []SType) (TypeSubst, error) {
	if len(items1) != len(items2) {
		str := fmt.Sprintf("type lists are different sizes %v vs. %v",
			items1, items2)
		return nil, typeError(ErrUnifyListLength, str)
	}

	res := TypeSubst{}
	for i := range items1 {
		subst, err := Unify(items1[i], items2[i])
		if err != nil {
			return nil, err
		}
		for typeVar, t := range subst {
			if prev, ok := res[typeVar]; ok && !Equal(prev, t) {
				str := fmt.Sprintf("cannot merge new substitution %v "+
					"for %v, already bound to %v", t, typeVar, prev)
				return nil, typeError(ErrUnifyConflict, str)
			}
			res[typeVar] = t
		}
	}
	return res, nil
}
