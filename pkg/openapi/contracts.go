package openapi

import (
	"context"
	"io/fs"
)

// Loader reads a document from a Source.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// Parser extracts the write operations of a document, keyed by operation id.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// Options configure the built-in loader and parser.
type Options struct {
	// FileSystem serves SourceKindFS sources. Nil rejects them.
	FileSystem fs.FS
	// Validate checks the document against the OpenAPI schema before
	// operations are extracted. On by default.
	Validate bool
}

type Option func(*Options)

// WithFileSystem serves fs sources from files.
func WithFileSystem(files fs.FS) Option {
	return func(o *Options) { o.FileSystem = files }
}

// WithValidation toggles document validation.
func WithValidation(enabled bool) Option {
	return func(o *Options) { o.Validate = enabled }
}

// NewOptions applies options over the defaults.
func NewOptions(options ...Option) Options {
	o := Options{Validate: true}
	for _, option := range options {
		if option != nil {
			option(&o)
		}
	}
	return o
}
