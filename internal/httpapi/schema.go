package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/alexanderramin/todod/internal/domain"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// todoInputSchema is the body accepted by create and update. Unknown
// properties are ignored.
const todoInputSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"title": "TodoInput",
	"type": "object",
	"required": ["title"],
	"properties": {
		"title":       {"type": "string"},
		"description": {"type": ["string", "null"]},
		"completed":   {"type": "boolean"}
	}
}`

const todoInputSchemaURL = "todo_input.json"

// todoPayload is the static shape a validated body decodes into.
type todoPayload struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func (p todoPayload) toInput() domain.TodoInput {
	return domain.TodoInput{
		Title:       p.Title,
		Description: p.Description,
		Completed:   domain.BoolFromPtrWithDefault(false, p.Completed),
	}
}

// FieldError is one entry of a 422 response body.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError reports a request that does not match the expected shape.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, strings.Join(f.Loc, ".")+": "+f.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func newValidationError(loc []string, msg, typ string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Loc: loc, Msg: msg, Type: typ}}}
}

// inputValidator checks request bodies against the compiled schema.
type inputValidator struct {
	schema *jsonschema.Schema
}

func newInputValidator() (*inputValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(todoInputSchemaURL, strings.NewReader(todoInputSchema)); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	schema, err := compiler.Compile(todoInputSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &inputValidator{schema: schema}, nil
}

// decode validates body and decodes it into a TodoInput. Any shape problem,
// including malformed JSON, is reported as *ValidationError.
func (v *inputValidator) decode(body []byte) (domain.TodoInput, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.TodoInput{}, newValidationError([]string{"body"}, "Field required", "missing")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return domain.TodoInput{}, newValidationError([]string{"body"}, "JSON decode error: "+err.Error(), "json_invalid")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.TodoInput{}, newValidationError([]string{"body"}, "JSON decode error: trailing data after object", "json_invalid")
	}

	if err := v.schema.Validate(doc); err != nil {
		return domain.TodoInput{}, schemaErrorToValidation(err)
	}

	var p todoPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return domain.TodoInput{}, newValidationError([]string{"body"}, "JSON decode error: "+err.Error(), "json_invalid")
	}
	return p.toInput(), nil
}

var quotedName = regexp.MustCompile(`'([^']+)'`)

// schemaErrorToValidation flattens the jsonschema cause tree into field errors.
func schemaErrorToValidation(err error) *ValidationError {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return newValidationError([]string{"body"}, err.Error(), "value_error")
	}
	out := &ValidationError{}
	collectSchemaErrors(ve, out)
	if len(out.Fields) == 0 {
		return newValidationError([]string{"body"}, ve.Message, "value_error")
	}
	return out
}

func collectSchemaErrors(ve *jsonschema.ValidationError, out *ValidationError) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectSchemaErrors(cause, out)
		}
		return
	}

	loc := append([]string{"body"}, pointerSegments(ve.InstanceLocation)...)
	keyword := lastSegment(ve.KeywordLocation)

	if keyword == "required" {
		for _, m := range quotedName.FindAllStringSubmatch(ve.Message, -1) {
			out.Fields = append(out.Fields, FieldError{
				Loc:  append(append([]string{}, loc...), m[1]),
				Msg:  "Field required",
				Type: "missing",
			})
		}
		return
	}

	typ := keyword
	if keyword == "type" {
		typ = "type_error"
	}
	out.Fields = append(out.Fields, FieldError{Loc: loc, Msg: ve.Message, Type: typ})
}

// pointerSegments splits a JSON pointer such as "/title" into its segments.
func pointerSegments(ptr string) []string {
	ptr = strings.TrimPrefix(ptr, "#")
	if ptr == "" || ptr == "/" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(strings.ReplaceAll(p, "~1", "/"), "~0", "~")
	}
	return parts
}

func lastSegment(ptr string) string {
	if i := strings.LastIndex(ptr, "/"); i >= 0 {
		return ptr[i+1:]
	}
	return ptr
}
