// Package parser extracts form-ready operations from OpenAPI documents with
// kin-openapi.
package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-projectform/pkg/openapi"
)

const (
	hintPrefix = "x-projectform-"
	orderHint  = hintPrefix + "order"
)

// bodyMediaTypes lists the request body encodings a form can submit, most
// preferred first.
var bodyMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// Parser reads the POST, PUT and PATCH operations of a document.
type Parser struct {
	validate bool
}

var _ pkgopenapi.Parser = (*Parser)(nil)

func New(options pkgopenapi.Options) *Parser {
	return &Parser{validate: options.Validate}
}

// Operations maps operation ids to their flattened request bodies. An
// operation without an operationId is keyed "<method>:<path>".
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: empty document")
	}

	spec, err := (&openapi3.Loader{Context: ctx}).LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: %s: %w", doc.Location(), err)
	}
	if p.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: %s: invalid: %w", doc.Location(), err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, fmt.Errorf("openapi parser: %s has no paths", doc.Location())
	}

	operations := map[string]pkgopenapi.Operation{}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range map[string]*openapi3.Operation{
			"POST":  item.Post,
			"PUT":   item.Put,
			"PATCH": item.Patch,
		} {
			if operation == nil {
				continue
			}
			op := operationFrom(method, path, operation)
			operations[op.ID] = op
		}
	}
	if len(operations) == 0 {
		return nil, fmt.Errorf("openapi parser: %s has no write operations", doc.Location())
	}
	return operations, nil
}

func operationFrom(method, path string, operation *openapi3.Operation) pkgopenapi.Operation {
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	return pkgopenapi.Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		Summary:     operation.Summary,
		Description: operation.Description,
		Body:        requestBody(operation.RequestBody),
	}
}

func requestBody(ref *openapi3.RequestBodyRef) pkgopenapi.RequestBody {
	if ref == nil || ref.Value == nil || len(ref.Value.Content) == 0 {
		return pkgopenapi.RequestBody{}
	}
	content := ref.Value.Content

	mediaType := ""
	for _, candidate := range bodyMediaTypes {
		if _, ok := content[candidate]; ok {
			mediaType = candidate
			break
		}
	}
	if mediaType == "" {
		// no form encoding; fall back to the first declared type
		declared := make([]string, 0, len(content))
		for name := range content {
			declared = append(declared, name)
		}
		sort.Strings(declared)
		mediaType = declared[0]
	}

	body := pkgopenapi.RequestBody{MediaType: mediaType}
	schema := content[mediaType].Schema
	if schema == nil || schema.Value == nil {
		return body
	}
	object := schema.Value

	body.Required = append([]string(nil), object.Required...)
	body.Order = stringList(object.Extensions[orderHint])
	body.Hints = hints(object.Extensions)
	if len(object.Properties) > 0 {
		body.Properties = make(map[string]pkgopenapi.Property, len(object.Properties))
		for name, property := range object.Properties {
			if property == nil || property.Value == nil {
				continue
			}
			body.Properties[name] = propertyFrom(property.Value)
		}
	}
	return body
}

func propertyFrom(schema *openapi3.Schema) pkgopenapi.Property {
	property := pkgopenapi.Property{
		Format:      schema.Format,
		Description: schema.Description,
		Default:     schema.Default,
		Minimum:     schema.Min,
		Maximum:     schema.Max,
		Hints:       hints(schema.Extensions),
	}
	if schema.Type != nil {
		property.Type = strings.Join(schema.Type.Slice(), ",")
	}
	if schema.MinLength > 0 {
		n := int(schema.MinLength)
		property.MinLength = &n
	}
	if schema.MaxLength != nil {
		n := int(*schema.MaxLength)
		property.MaxLength = &n
	}
	return property
}

// hints flattens x-projectform-<key> scalar extensions into <key>=value.
// The order list is kept apart.
func hints(extensions map[string]any) map[string]string {
	var out map[string]string
	for key, value := range extensions {
		name, ok := strings.CutPrefix(key, hintPrefix)
		if !ok || key == orderHint || name == "" {
			continue
		}
		var text string
		switch v := value.(type) {
		case string:
			text = strings.TrimSpace(v)
		case bool:
			text = strconv.FormatBool(v)
		case float64:
			text = strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			text = strconv.Itoa(v)
		default:
			continue
		}
		if out == nil {
			out = map[string]string{}
		}
		out[name] = text
	}
	return out
}

func stringList(value any) []string {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}
