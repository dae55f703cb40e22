// Package format provides the adapter contract every configuration format
// implements and the registry that maps formats to adapters.
package format

import (
	"os"

	"github.com/thirteen37/configbridge/document"
)

// Adapter parses and renders one textual format.
type Adapter interface {
	// Format returns the format this adapter handles.
	Format() document.Format

	// Name returns a unique human-readable adapter name.
	Name() string

	// ParseText parses data into a document tagged with this adapter's kind.
	ParseText(data []byte, opts document.Options) (document.Document, error)

	// LoadFile reads path and behaves as ParseText.
	LoadFile(path string, opts document.Options) (document.Document, error)

	// DumpText renders doc. The document kind must match the adapter's
	// format; converting between formats is the converter's job.
	DumpText(doc document.Document, opts document.Options) ([]byte, error)

	// SaveFile renders doc and writes it to path.
	SaveFile(doc document.Document, path string, opts document.Options) error
}

// ReadFile reads a whole file, reporting failures as document.ErrIO.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, document.IOFailure("read", path, err)
	}
	return data, nil
}

// WriteFile writes data to path, reporting failures as document.ErrIO.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return document.IOFailure("write", path, err)
	}
	return nil
}

// LoadFile implements Adapter.LoadFile on top of a ParseText.
func LoadFile(a Adapter, path string, opts document.Options) (document.Document, error) {
	data, err := ReadFile(path)
	if err != nil {
		return document.Document{}, err
	}
	return a.ParseText(data, opts)
}

// SaveFile implements Adapter.SaveFile on top of a DumpText.
func SaveFile(a Adapter, doc document.Document, path string, opts document.Options) error {
	data, err := a.DumpText(doc, opts)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// CheckKind returns a type mismatch error unless doc belongs to f's family.
func CheckKind(doc document.Document, f document.Format) error {
	if doc.Kind() != f.Kind() {
		return document.TypeMismatch("dump", f, "document is %s, not %s", doc.Kind(), f.Kind())
	}
	return nil
}
