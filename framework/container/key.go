package container

import (
	"errors"
	"fmt"
	"reflect"
)

// ── Type keys ─────────────────────────────────────────────────────────────────

// KeyOf returns the type key for T. For interface types it is the interface
// itself, never the dynamic type of whatever value is later bound under it.
//
//	container.KeyOf[GreetingService]()   // interface key
//	container.KeyOf[*config.Config]()    // concrete key
func KeyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// NameOf returns the display name of T's type key.
func NameOf[T any]() string {
	return keyName(KeyOf[T]())
}

// keyName renders a key as "pkgpath.Name" for named types and falls back to
// the reflect representation (e.g. "*config.Config", "[]string") otherwise.
func keyName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// ── Errors ────────────────────────────────────────────────────────────────────

// ErrNotBound is matched by every *NotBoundError.
var ErrNotBound = errors.New("container: no binding registered")

// NotBoundError is the panic value of Get and GetMut when the requested type
// has nothing bound under it.
type NotBoundError struct {
	Type reflect.Type
}

func (e *NotBoundError) Error() string {
	return fmt.Sprintf("container: no binding registered for [%s]", keyName(e.Type))
}

// Is reports ErrNotBound as a match.
func (e *NotBoundError) Is(target error) bool { return target == ErrNotBound }
