// Package classifier defines the gateway to the externally trained
// search-decision function and the column/dtype manifests that fix its
// input shape.
package classifier

import (
	"context"
	"errors"
)

// Sentinel kinds for classifier errors.
var (
	// ErrEncode marks a feature map that could not be coerced to the
	// manifest's columns and types.
	ErrEncode = errors.New("feature encoding failed")
	// ErrPredict marks a failure inside the decision function itself.
	ErrPredict = errors.New("classification failed")
)

// Row is a feature record coerced to the manifest's column order and
// per-column types. Values holds string, int64 or float64 entries, index
// aligned with Columns.
type Row struct {
	Columns []string
	Values  []any
}

// Gateway is the decision function. Implementations must be deterministic
// for a given row and safe for concurrent use.
type Gateway interface {
	Predict(ctx context.Context, row Row) (bool, error)
}

// GatewayFunc adapts a plain function to the Gateway interface.
type GatewayFunc func(ctx context.Context, row Row) (bool, error)

func (f GatewayFunc) Predict(ctx context.Context, row Row) (bool, error) {
	return f(ctx, row)
}
