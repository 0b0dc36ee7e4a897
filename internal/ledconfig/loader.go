package ledconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultVersion is assumed when a document has no "version" field.
const DefaultVersion int64 = 1

// Document is a syntactically valid config document. It is read-only once
// returned by Parse or LoadFile.
type Document struct {
	path    string
	data    []byte
	version int64
}

// Path returns the file the document was read from, or "" for in-memory input.
func (d *Document) Path() string { return d.path }

// Version returns the declared schema version, DefaultVersion if omitted.
func (d *Document) Version() int64 { return d.version }

// Bytes returns a copy of the raw document.
func (d *Document) Bytes() []byte { return bytes.Clone(d.data) }

// Decode unmarshals the document into v. Decoder failures are *ParseError.
func (d *Document) Decode(v any) error {
	if err := json.Unmarshal(d.data, v); err != nil {
		return &ParseError{Path: d.path, Err: err}
	}

	return nil
}

// Parse validates data as a JSON object and reads its version header.
func Parse(data []byte) (*Document, error) {
	return parse("", data)
}

// LoadFile reads name from fsys and parses it. A missing or zero-length file
// is a *MissingFileError, never a parse error.
func LoadFile(fsys fs.FS, name string) (*Document, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, &MissingFileError{Path: name, Err: err}
		}

		return nil, fmt.Errorf("failed to read LED config %s: %w", name, err)
	}

	return parse(name, data)
}

func parse(path string, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, &MissingFileError{Path: path}
	}

	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		// Re-decode to surface the decoder's *json.SyntaxError with its offset.
		var discard any
		err := json.Unmarshal(trimmed, &discard)

		if err == nil {
			err = errors.New("invalid JSON")
		}

		return nil, &ParseError{Path: path, Err: err}
	}

	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ParseError{Path: path, Err: errors.New("document root must be a JSON object")}
	}

	root, err := decodeObject(trimmed)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	version := DefaultVersion

	if raw, ok := root.field("version"); ok {
		if version, err = versionNumber(raw); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	}

	return &Document{path: path, data: trimmed, version: version}, nil
}

// osFS reads host paths as given, absolute or relative to the working
// directory. os.DirFS cannot do that because it rejects rooted names.
type osFS struct{}

// OSFS returns an fs.FS backed by the host file system.
func OSFS() fs.FS { return osFS{} }

func (osFS) Open(name string) (fs.File, error) { return os.Open(name) }

func (osFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
