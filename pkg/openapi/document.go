package openapi

import (
	"errors"
	"path/filepath"
	"strings"
)

// SourceKind says how a Loader reaches a document.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
)

// Source locates a document on disk or inside the loader's fs.FS.
type Source struct {
	Kind     SourceKind
	Location string
}

// SourceFromFile points at a file path.
func SourceFromFile(path string) Source {
	return Source{Kind: SourceKindFile, Location: filepath.Clean(path)}
}

// SourceFromFS points at a name inside an fs.FS.
func SourceFromFS(name string) Source {
	return Source{Kind: SourceKindFS, Location: name}
}

// IsZero reports whether s locates nothing.
func (s Source) IsZero() bool {
	return s.Location == ""
}

func (s Source) String() string {
	if s.IsZero() {
		return ""
	}
	return string(s.Kind) + ":" + s.Location
}

// Document is a raw OpenAPI payload and where it was read from.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument copies raw into a Document.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src.IsZero() {
		return Document{}, errors.New("openapi: document source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: document " + src.Location + " is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument is NewDocument for embedded documents.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source { return d.source }

func (d Document) Location() string { return d.source.Location }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Operation is one write operation (POST, PUT or PATCH) and its request body.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	Body        RequestBody
}

// RequestBody is the top-level object a form submits. Nested object and
// array properties keep their Type so the model builder can refuse them.
type RequestBody struct {
	// MediaType is the content type the body was read from.
	MediaType  string
	Required   []string
	Properties map[string]Property
	// Order lists property names from x-projectform-order.
	Order []string
	// Hints holds the other x-projectform-<key> scalars, keyed by <key>.
	Hints map[string]string
}

// IsRequired reports whether name is listed as required.
func (b RequestBody) IsRequired(name string) bool {
	for _, required := range b.Required {
		if required == name {
			return true
		}
	}
	return false
}

// Property is a scalar request body property and its constraints.
type Property struct {
	Type        string
	Format      string
	Description string
	Default     any
	Minimum     *float64
	Maximum     *float64
	MinLength   *int
	MaxLength   *int
	Hints       map[string]string
}

// Scalar reports whether the property maps onto a single form control.
func (p Property) Scalar() bool {
	switch strings.ToLower(p.Type) {
	case "object", "array":
		return false
	}
	return true
}
