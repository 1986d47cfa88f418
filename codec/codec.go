// Package codec encodes component values for diagnostics.
package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Decode unmarshals bz into a fresh T. On failure the zero T is returned.
func Decode[T any](bz []byte) (T, error) {
	var value T
	if err := json.Unmarshal(bz, &value); err != nil {
		var zero T
		return zero, eris.Wrapf(err, "cannot decode %T", zero)
	}
	return value, nil
}

func Encode(value any) ([]byte, error) {
	bz, err := json.Marshal(value)
	if err != nil {
		return nil, eris.Wrapf(err, "cannot encode %T", value)
	}
	return bz, nil
}
