package madmp

import (
	"bytes"
	"sync"

	gojson "github.com/goccy/go-json"
)

// JSONDriver converts between raw JSON bytes and untyped values via a
// pluggable SPI. The default implementation is backed by goccy/go-json and
// may be swapped with SetJSONDriver.
type JSONDriver interface {
	// DecodeValue parses data into an untyped value graph. Numbers must be
	// preserved as json.Number.
	DecodeValue(data []byte) (any, error)
	// EncodeIndent renders v with the given indentation.
	EncodeIndent(v any, prefix, indent string) ([]byte, error)
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = gojsonDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// gojsonDriver wraps the goccy/go-json implementation.
type gojsonDriver struct{}

func (gojsonDriver) DecodeValue(data []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (gojsonDriver) EncodeIndent(v any, prefix, indent string) ([]byte, error) {
	return gojson.MarshalIndent(v, prefix, indent)
}

func (gojsonDriver) Name() string { return "go-json" }
