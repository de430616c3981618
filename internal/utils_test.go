package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateKey(t *testing.T) {
	type comparableKey struct {
		A string
		B int
	}
	type sliceKey struct {
		A []int
	}
	type ifaceKey struct {
		X any
	}

	testCases := []struct {
		name string
		key  any
		want error
	}{
		{name: "String", key: "a"},
		{name: "Int", key: 42},
		{name: "Struct", key: comparableKey{"a", 1}},
		{name: "Pointer", key: &comparableKey{}},
		{name: "Nil", key: nil, want: ErrNilKey},
		{name: "Slice", key: []int{1}, want: ErrUncomparableKey},
		{name: "NilSlice", key: []int(nil), want: ErrUncomparableKey},
		{name: "Map", key: map[string]int{}, want: ErrUncomparableKey},
		{name: "Func", key: func() {}, want: ErrUncomparableKey},
		{name: "StructWithSlice", key: sliceKey{}, want: ErrUncomparableKey},
		{name: "StructWithIfaceString", key: ifaceKey{"a"}},
		{name: "StructWithIfaceNil", key: ifaceKey{}},
		{name: "StructWithIfaceSlice", key: ifaceKey{[]int{1}}, want: ErrUncomparableKey},
		{name: "ArrayOfIfaceMap", key: [2]any{1, map[string]int{}}, want: ErrUncomparableKey},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateKey(tc.key)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
