package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Column dtypes understood by the manifest. Names follow the training
// pipeline's dtype manifest.
const (
	DTypeObject  = "object"
	DTypeInt64   = "int64"
	DTypeFloat64 = "float64"
)

// Manifest fixes the column order and per-column types of rows handed to
// the gateway. It is loaded once at process start and treated as immutable.
type Manifest struct {
	columns []string
	dtypes  map[string]string
}

// LoadManifest reads the column list and dtype map from two JSON artifacts
// and cross-checks them.
func LoadManifest(columnsPath, dtypesPath string) (*Manifest, error) {
	var columns []string
	if err := readJSON(columnsPath, &columns); err != nil {
		return nil, fmt.Errorf("load columns manifest: %w", err)
	}
	var dtypes map[string]string
	if err := readJSON(dtypesPath, &dtypes); err != nil {
		return nil, fmt.Errorf("load dtypes manifest: %w", err)
	}
	return NewManifest(columns, dtypes)
}

// NewManifest builds a manifest from an ordered column list and a dtype
// map. Every column needs a known dtype and vice versa.
func NewManifest(columns []string, dtypes map[string]string) (*Manifest, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("manifest has no columns")
	}
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if _, dup := seen[col]; dup {
			return nil, fmt.Errorf("manifest column %q duplicated", col)
		}
		seen[col] = struct{}{}
		dt, ok := dtypes[col]
		if !ok {
			return nil, fmt.Errorf("manifest column %q has no dtype", col)
		}
		switch dt {
		case DTypeObject, DTypeInt64, DTypeFloat64:
		default:
			return nil, fmt.Errorf("manifest column %q has unknown dtype %q", col, dt)
		}
	}
	for col := range dtypes {
		if _, ok := seen[col]; !ok {
			return nil, fmt.Errorf("dtype for unknown column %q", col)
		}
	}
	return &Manifest{columns: append([]string(nil), columns...), dtypes: dtypes}, nil
}

// Columns returns the manifest's column order as a fresh slice.
func (m *Manifest) Columns() []string {
	return append([]string(nil), m.columns...)
}

// Encode coerces a derived feature map into a typed, ordered row. The
// feature key set must equal the manifest's column set; any mismatch or
// uncoercible value wraps ErrEncode.
func (m *Manifest) Encode(features map[string]any) (Row, error) {
	if len(features) != len(m.columns) {
		for key := range features {
			if _, ok := m.dtypes[key]; !ok {
				return Row{}, fmt.Errorf("%w: column %q not in manifest", ErrEncode, key)
			}
		}
	}
	row := Row{Columns: m.columns, Values: make([]any, len(m.columns))}
	for i, col := range m.columns {
		raw, ok := features[col]
		if !ok {
			return Row{}, fmt.Errorf("%w: column %q absent", ErrEncode, col)
		}
		v, err := coerce(raw, m.dtypes[col])
		if err != nil {
			return Row{}, fmt.Errorf("%w: column %q: %v", ErrEncode, col, err)
		}
		row.Values[i] = v
	}
	return row, nil
}

func coerce(v any, dtype string) (any, error) {
	switch dtype {
	case DTypeObject:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%T is not a string", v)
		}
		return s, nil
	case DTypeInt64:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("%v is not an integer", n)
			}
			return int64(n), nil
		default:
			return nil, fmt.Errorf("%T is not an integer", v)
		}
	case DTypeFloat64:
		switch n := v.(type) {
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case float64:
			return n, nil
		default:
			return nil, fmt.Errorf("%T is not a number", v)
		}
	default:
		return nil, fmt.Errorf("unknown dtype %q", dtype)
	}
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
