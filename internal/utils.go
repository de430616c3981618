package internal

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNilKey          = errors.New("key cannot be nil")
	ErrUncomparableKey = errors.New("key is not comparable")
)

// ValidateKey reports whether key can be used as a map key at runtime.
// Interface-typed keys compile fine but panic in a map when the dynamic
// value holds a slice, map or func, including inside an interface field of
// an otherwise comparable struct or array.
func ValidateKey(key any) error {
	if key == nil {
		return ErrNilKey
	}
	if !reflect.ValueOf(key).Comparable() {
		return fmt.Errorf("%w: %T", ErrUncomparableKey, key)
	}

	return nil
}
