// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmixt/jsonio"
)

// readInput reads a whole file, decompressing .gz and .zst files.
func readInput(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(path) {
	case ".gz":
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		defer zr.Close()

		return io.ReadAll(zr)
	case ".zst":
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		defer dec.Close()

		out, err := dec.DecodeAll(raw, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompression of %s failed: %w", path, err)
		}

		return out, nil
	default:
		return raw, nil
	}
}

// writeOutput writes data to path, compressing by extension, or to w when
// path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}

	switch filepath.Ext(path) {
	case ".gz":
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return err
		}
		data = buf.Bytes()
	case ".zst":
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		data = enc.EncodeAll(data, nil)
		if err := enc.Close(); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0o644)
}

// encodeResponse renders resp as JSON or YAML.
func encodeResponse(resp *jsonio.Response, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	default:
		if err := jsonio.WriteResponse(&buf, resp); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}
