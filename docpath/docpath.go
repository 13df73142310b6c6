// Package docpath builds key paths over dynamic documents from text.
//
// Documents are the shapes produced by JSON and YAML decoding:
// map[string]any, []any and scalars. Paths look like
//
//	items[2].name
//	settings["log.level"]
//	items[?7]
//
// Paths never fault on the document's shape. A key on a non-map or an index
// out of range extracts nil and embeds as a no-op. Map keys follow
// keypath.Key: a missing key extracts nil and embedding nil deletes the key,
// so a null value and an absent key are the same document.
// "[?n]" spells the bounds-checked index explicitly; it behaves like "[n]".
package docpath

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/odvcencio/furry-ref/keypath"
)

// Segment is one step of a Path.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
	Safe    bool
}

func (s Segment) String() string {
	switch {
	case s.IsIndex && s.Safe:
		return "[?" + strconv.Itoa(s.Index) + "]"
	case s.IsIndex:
		return "[" + strconv.Itoa(s.Index) + "]"
	case isPlainKey(s.Key):
		return s.Key
	default:
		return "[" + strconv.Quote(s.Key) + "]"
	}
}

// Path is a parsed document path. The zero Path addresses the root.
type Path struct {
	Segments []Segment
}

// SyntaxError reports a malformed path.
type SyntaxError struct {
	Path   string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("docpath: %s at offset %d in %q", e.Msg, e.Offset, e.Path)
}

// Parse parses a textual path. The empty string is the root path.
func Parse(text string) (Path, error) {
	p := parser{src: text}
	return p.parse()
}

// MustParse is like Parse but panics on error.
func MustParse(text string) Path {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// IsRoot reports whether the path addresses the whole document.
func (p Path) IsRoot() bool {
	return len(p.Segments) == 0
}

func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p.Segments {
		if i > 0 && !seg.IsIndex && isPlainKey(seg.Key) {
			b.WriteByte('.')
		}
		b.WriteString(seg.String())
	}
	return b.String()
}

// KeyPath returns the structural accessor for the path.
func (p Path) KeyPath() keypath.KeyPath[any, any] {
	kp := keypath.Identity[any]()
	for _, seg := range p.Segments {
		if seg.IsIndex {
			kp = keypath.Append(kp, indexPath(seg.Index))
			continue
		}
		kp = keypath.Append(kp, keyPath(seg.Key))
	}
	return kp
}

// Get returns the value at path in doc.
func Get(doc any, path string) (any, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return p.KeyPath().Extract(doc), nil
}

// Set returns a copy of doc with value stored at path.
func Set(doc any, path string, value any) (any, error) {
	p, err := Parse(path)
	if err != nil {
		return doc, err
	}
	return p.KeyPath().Embed(value, doc), nil
}

func keyPath(key string) keypath.KeyPath[any, any] {
	return keypath.New(
		func(root any) any {
			m, ok := root.(map[string]any)
			if !ok {
				return nil
			}
			return m[key]
		},
		func(value any, root any) any {
			m, ok := root.(map[string]any)
			if !ok {
				return root
			}
			if _, exists := m[key]; !exists && value == nil {
				return root
			}
			next := maps.Clone(m)
			if next == nil {
				next = make(map[string]any, 1)
			}
			if value == nil {
				delete(next, key)
				return next
			}
			next[key] = value
			return next
		},
	)
}

func indexPath(i int) keypath.KeyPath[any, any] {
	return keypath.New(
		func(root any) any {
			s, ok := root.([]any)
			if !ok || i < 0 || i >= len(s) {
				return nil
			}
			return s[i]
		},
		func(value any, root any) any {
			s, ok := root.([]any)
			if !ok || i < 0 || i >= len(s) {
				return root
			}
			next := slices.Clone(s)
			next[i] = value
			return next
		},
	)
}

func isPlainKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if r == '.' || r == '[' || r == ']' || r == '"' {
			return false
		}
	}
	return true
}
