package codec

import (
	"fmt"
	"strings"
)

// ForName returns the codec registered under name: "json", "msgpack",
// "cbor" or "cbor-det". Unknown names are an error.
func ForName[V any](name string) (Codec[V], error) {
	name = strings.ToLower(name)
	switch name {
	case "", "json":
		return JSON[V]{}, nil
	case "msgpack":
		return Msgpack[V]{}, nil
	case "cbor", "cbor-det":
		c, err := NewCBOR[V](name == "cbor-det")
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("codec: unknown codec %q", name)
	}
}
