package projectform

import (
	internalLoader "github.com/goliatone/go-projectform/internal/openapi/loader"
	internalParser "github.com/goliatone/go-projectform/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-projectform/pkg/openapi"
)

// NewLoader returns the built-in document loader.
func NewLoader(options ...pkgopenapi.Option) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewOptions(options...))
}

// NewParser returns the kin-openapi backed parser.
func NewParser(options ...pkgopenapi.Option) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewOptions(options...))
}
