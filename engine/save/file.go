package save

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// ErrNoSave is returned by ReadFile when the save file does not exist.
var ErrNoSave = errors.New("no save file found")

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// WriteFile writes save data to path, zstd-compressed if compress is set.
// Parent directories are created as needed.
func WriteFile(path string, d *Data, compress bool) error {
	raw, err := Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding save: %w", err)
	}

	if compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		raw = enc.EncodeAll(raw, nil)
		enc.Close()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	return nil
}

// ReadFile reads and validates a save file, compressed or not.
func ReadFile(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("reading save: %w", err)
	}

	if bytes.HasPrefix(raw, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		raw, err = dec.DecodeAll(raw, nil)
		if err != nil {
			return nil, fmt.Errorf("decompressing save: %w", err)
		}
	}

	return Unmarshal(raw)
}
