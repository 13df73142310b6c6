package script

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/odvcencio/furry-ref/docpath"
)

//go:embed schema.cue
var schemaSource []byte

// Format identifies the script encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// ValidationError reports a script that does not match the schema or
// contains an invalid path.
type ValidationError struct {
	File string
	// Step is the offending step index, or -1 for document-level errors.
	Step int
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Step >= 0 {
		return fmt.Sprintf("invalid script %s: step %d: %v", e.File, e.Step, e.Err)
	}
	return fmt.Sprintf("invalid script %s: %v", e.File, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Details returns a multi-line description including CUE positions when
// available.
func (e *ValidationError) Details() string {
	var cueErr cueerrors.Error
	if errors.As(e.Err, &cueErr) {
		return strings.TrimSpace(cueerrors.Details(cueErr, nil))
	}
	return e.Error()
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("unsupported script extension %q", filepath.Ext(path))
	}
}

// Load reads, validates and decodes the script at path.
func Load(path string) (*Script, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data, format, path)
}

// Parse validates and decodes script source. filename is used in errors.
func Parse(data []byte, format Format, filename string) (*Script, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling script schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Script"))

	var value cue.Value
	switch format {
	case FormatYAML:
		var doc any
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
			return nil, &ValidationError{File: filename, Step: -1, Err: fmt.Errorf("parsing YAML: %w", err)}
		}
		value = ctx.Encode(doc)
	case FormatCUE:
		value = ctx.CompileBytes(data, cue.Filename(filename))
	default:
		return nil, fmt.Errorf("unsupported script format %q", format)
	}
	if err := value.Err(); err != nil {
		return nil, &ValidationError{File: filename, Step: -1, Err: err}
	}

	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &ValidationError{File: filename, Step: -1, Err: err}
	}

	raw, err := unified.MarshalJSON()
	if err != nil {
		return nil, &ValidationError{File: filename, Step: -1, Err: err}
	}
	var s Script
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, &ValidationError{File: filename, Step: -1, Err: fmt.Errorf("decoding script: %w", err)}
	}

	if err := checkPaths(&s); err != nil {
		err.File = filename
		return nil, err
	}
	return &s, nil
}

func checkPaths(s *Script) *ValidationError {
	for i, step := range s.Steps {
		var path string
		switch step.Action() {
		case ActionSet:
			path = step.Set.Path
		case ActionSwap:
			path = step.Swap.Path
		case ActionAppend:
			path = step.Append.Path
		case ActionRemove:
			path = step.Remove.Path
		case "":
			return &ValidationError{Step: i, Err: errors.New("step has no action")}
		default:
			continue
		}
		if _, err := docpath.Parse(path); err != nil {
			return &ValidationError{Step: i, Err: err}
		}
	}
	return nil
}

func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
