// Package loader reads OpenAPI documents from disk or an fs.FS.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	pkgopenapi "github.com/goliatone/go-projectform/pkg/openapi"
)

// Loader reads file sources from disk and fs sources from its fs.FS.
type Loader struct {
	files fs.FS
}

var _ pkgopenapi.Loader = (*Loader)(nil)

func New(options pkgopenapi.Options) *Loader {
	return &Loader{files: options.FileSystem}
}

// Load reads src into a Document.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}
	if src.IsZero() {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: source has no location")
	}

	var (
		raw []byte
		err error
	)
	switch src.Kind {
	case pkgopenapi.SourceKindFile:
		raw, err = os.ReadFile(src.Location)
	case pkgopenapi.SourceKindFS:
		if l.files == nil {
			return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s: no filesystem configured", src)
		}
		raw, err = fs.ReadFile(l.files, src.Location)
	default:
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s: unsupported source kind %q", src.Location, src.Kind)
	}
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: read %s: %w", src, err)
	}
	return pkgopenapi.NewDocument(src, raw)
}
