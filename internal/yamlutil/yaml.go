// Package yamlutil decodes docite's YAML configuration strictly and with
// a size cap, so the config package stays independent of the YAML library.
package yamlutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps how many bytes are decoded. A config file is a handful
// of keys, so anything near this limit is not one.
var MaxInputSize = 64 << 10

var (
	ErrEmptyData      = errors.New("yamlutil: empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// DecodeStrict unmarshals data into v and rejects unknown fields.
// Syntax and field errors carry their [line:column] position.
func DecodeStrict(data []byte, v any) error {
	switch {
	case v == nil:
		return ErrNilDestination
	case len(data) == 0:
		return ErrEmptyData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}

	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %s", yaml.FormatError(err, false, false))
	}
	return nil
}

// DecodeFile reads at most MaxInputSize+1 bytes of path and decodes them
// with DecodeStrict. Open errors are returned unwrapped so callers can
// test them with os.IsNotExist.
func DecodeFile(path string, v any) error {
	f, err := os.Open(path) // #nosec G304 -- path chosen by the user
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, int64(MaxInputSize)+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading %s: %w", path, err)
	}
	return DecodeStrict(data, v)
}
