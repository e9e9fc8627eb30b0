package scope

import "errors"

var (
	// ErrTypeArgCount is returned when a generic call supplies a different
	// number of type arguments than the declaration has parameters. It is
	// fatal for the compilation.
	ErrTypeArgCount = errors.New("type argument count mismatch")
	// ErrNotGeneric is returned when a variant operation targets a node
	// without a generics record.
	ErrNotGeneric = errors.New("node is not generic")
	// ErrUnknownVariant is returned when selecting a variant key that was
	// never registered.
	ErrUnknownVariant = errors.New("unknown variant")
)
