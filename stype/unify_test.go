// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stype

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

var primTypes = []SType{
	SAny, SBoolean, SByte, SShort, SInt, SLong, SBigInt, SGroupElement,
	SSigmaProp,
}

// TestUnifyPrimitives ensures every primitive unifies with itself and that
// Any on the left absorbs every type.
func TestUnifyPrimitives(t *testing.T) {
	t.Parallel()

	for _, tpe := range primTypes {
		cases := [][2]SType{
			{tpe, tpe},
			{SAny, tpe},
			{SAny, NewSColl(tpe)},
			{NewSColl(SAny), NewSColl(tpe)},
			{NewSColl(SAny), Pair(tpe, tpe)},
			{NewSColl(SAny), Pair(tpe, Pair(tpe, tpe))},
		}
		for _, c := range cases {
			subst, err := Unify(c[0], c[1])
			require.NoError(t, err, "unify %v and %v", c[0], c[1])
			require.Empty(t, subst, "unify %v and %v", c[0], c[1])
		}
	}
}

// TestUnifyPositive tests unification producing bindings.
func TestUnifyPositive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		t1   SType
		t2   SType
		want TypeSubst
	}{{
		name: "same type var",
		t1:   TypeVarT,
		t2:   TypeVarT,
		want: TypeSubst{},
	}, {
		name: "type var binding",
		t1:   TypeVarT,
		t2:   SInt,
		want: TypeSubst{TypeVarT: SInt},
	}, {
		name: "collection element",
		t1:   NewSColl(TypeVarT),
		t2:   NewSColl(SLong),
		want: TypeSubst{TypeVarT: SLong},
	}, {
		name: "option element",
		t1:   NewSOption(TypeVarT),
		t2:   NewSOption(NewSColl(SByte)),
		want: TypeSubst{TypeVarT: NewSColl(SByte)},
	}, {
		name: "tuple items",
		t1:   Pair(TypeVarT, TypeVarIV),
		t2:   Pair(SInt, SBox),
		want: TypeSubst{TypeVarT: SInt, TypeVarIV: SBox},
	}, {
		name: "same var same binding",
		t1:   Pair(TypeVarT, TypeVarT),
		t2:   Pair(SInt, SInt),
		want: TypeSubst{TypeVarT: SInt},
	}, {
		name: "collection of vars against tuple",
		t1:   NewSColl(TypeVarT),
		t2:   Pair(SInt, SLong),
		want: TypeSubst{TypeVarT: SAny},
	}, {
		name: "boolean widens to sigma prop",
		t1:   SBoolean,
		t2:   SSigmaProp,
		want: TypeSubst{},
	}, {
		name: "equal object types",
		t1:   SBox,
		t2:   SBox,
		want: TypeSubst{},
	}}

	for _, test := range tests {
		subst, err := Unify(test.t1, test.t2)
		require.NoError(t, err, test.name)
		require.Equal(t, len(test.want), len(subst), test.name)
		for k, v := range test.want {
			if !Equal(subst[k], v) {
				t.Errorf("%s: got %s want %s", test.name,
					spew.Sdump(subst), spew.Sdump(test.want))
			}
		}
	}
}

// TestUnifyNegative ensures structurally different types fail to unify.
func TestUnifyNegative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		t1 SType
		t2 SType
	}{
		{SInt, SLong},
		{SInt, Pair(SInt, SBoolean)},
		{Pair(SBoolean, SInt), Pair(SBoolean, SBoolean)},
		{Pair(SInt, TypeVarT), SInt},
		{Pair(TypeVarT, SInt), Pair(SBoolean, TypeVarIV)},
		{NewSColl(NewSColl(SInt)), NewSColl(SInt)},
		{NewSColl(TypeVarT), NewSColl(TypeVarIV)},
		{NewSOption(SBoolean), NewSOption(SInt)},
		{NewSOption(SBoolean), NewSColl(SInt)},
		{SSigmaProp, SBoolean},
		{Pair(SInt, SInt), &STuple{Items: []SType{SInt, SInt, SInt}}},
		{SInt, SAny},
	}

	for _, test := range tests {
		_, err := Unify(test.t1, test.t2)
		var terr Error
		if !errors.As(err, &terr) {
			t.Errorf("unification of %v and %v should fail", test.t1,
				test.t2)
			continue
		}
		require.Equal(t, ErrUnifyMismatch, terr.ErrorCode)
	}
}

// TestUnifyMany tests list unification and substitution merging.
func TestUnifyMany(t *testing.T) {
	t.Parallel()

	subst, err := UnifyMany(
		[]SType{TypeVarT, NewSColl(TypeVarT)},
		[]SType{SInt, NewSColl(SInt)},
	)
	require.NoError(t, err)
	require.True(t, Equal(SInt, subst[TypeVarT]))

	_, err = UnifyMany([]SType{TypeVarT, TypeVarT}, []SType{SInt, SLong})
	var terr Error
	require.True(t, errors.As(err, &terr))
	require.Equal(t, ErrUnifyConflict, terr.ErrorCode)

	_, err = UnifyMany([]SType{SInt}, []SType{SInt, SInt})
	require.True(t, errors.As(err, &terr))
	require.Equal(t, ErrUnifyListLength, terr.ErrorCode)
}

// TestSpecializeMethod ensures method signatures are instantiated from the
// receiver and argument types.
func TestSpecializeMethod(t *testing.T) {
	t.Parallel()

	size := MustMethod(TypeCodeColl, MethodCollSize)
	specialized, err := size.SpecializeFor(NewSColl(SLong), nil)
	require.NoError(t, err)
	require.True(t, Equal(specialized.Tpe.Dom[0], NewSColl(SLong)))
	require.Empty(t, specialized.Tpe.TypeParams)

	getOrElse := MustMethod(TypeCodeOption, MethodOptionGetOrElse)
	specialized, err = getOrElse.SpecializeFor(NewSOption(SInt), []SType{SInt})
	require.NoError(t, err)
	require.True(t, Equal(specialized.Tpe.Range, SInt))

	_, err = getOrElse.SpecializeFor(NewSOption(SInt), []SType{SLong})
	require.Error(t, err)

	// The declared signature stays generic.
	require.True(t, Equal(getOrElse.Tpe.Range, TypeVarT))

	_, err = MethodByID(TypeCodeBox, 200)
	var terr Error
	require.True(t, errors.As(err, &terr))
	require.Equal(t, ErrMethodNotFound, terr.ErrorCode)
}

// TestIsPrim tests the type classification helpers.
func TestIsPrim(t *testing.T) {
	t.Parallel()

	for _, tpe := range primTypes {
		require.True(t, IsPrim(tpe), tpe.String())
	}
	require.False(t, IsPrim(SUnit))
	require.False(t, IsPrim(SBox))
	require.False(t, IsPrim(NewSColl(SInt)))

	require.True(t, IsNumeric(SBigInt))
	require.False(t, IsNumeric(SBoolean))
	require.False(t, IsEmbeddable(SAny))
	require.True(t, IsEmbeddable(SSigmaProp))
}
