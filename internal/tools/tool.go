// Package tools defines the operation catalog and wires it onto the MCP
// server. Per-operation behavior lives entirely in catalog entries; the
// transport and rendering path is shared by every tool.
package tools

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/li7hai26/torna-mcp/internal/torna"
)

// Args is the raw argument map for one call.
type Args map[string]any

// String returns the named argument trimmed of surrounding whitespace,
// or def when absent or not a string.
func (a Args) String(key, def string) string {
	if v, ok := a[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return def
}

// Bool returns the named argument, or def when absent or not a bool.
func (a Args) Bool(key string, def bool) bool {
	if v, ok := a[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the named argument, accepting the JSON number form, or def
// when absent.
func (a Args) Int(key string, def int) int {
	if v, ok := a[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Has reports whether the argument was supplied with a non-null value.
func (a Args) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// Builder turns arguments into an operation descriptor. It validates
// before anything touches the network and performs no I/O itself.
type Builder func(args Args) (torna.Descriptor, error)

// Spec declares one catalog entry: the tool surface plus the builder
// behind it. Every tool is open-world; the remaining behavior hints are
// declared per entry.
type Spec struct {
	Name        string
	Title       string
	Description string
	ReadOnly    bool
	Destructive bool
	Idempotent  bool
	Options     []mcp.ToolOption
	Build       Builder
}

var httpMethods = map[string]bool{
	"GET":    true,
	"POST":   true,
	"PUT":    true,
	"DELETE": true,
	"PATCH":  true,
}

// requireString fetches a mandatory string argument. Emptiness is left to
// per-field length rules.
func requireString(a Args, key string) (string, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return strings.TrimSpace(s), nil
}

// nameLength enforces the 1..100 character bound shared by name fields.
func nameLength(key, val string) error {
	n := utf8.RuneCountInString(val)
	if n < 1 {
		return fmt.Errorf("%s must be at least 1 character", key)
	}
	if n > 100 {
		return fmt.Errorf("%s must be at most 100 characters", key)
	}
	return nil
}

// requireMethod normalizes and validates the http_method argument.
func requireMethod(a Args) (string, error) {
	m := strings.ToUpper(a.String("http_method", "GET"))
	if !httpMethods[m] {
		return "", fmt.Errorf("http_method must be one of GET, POST, PUT, DELETE, PATCH")
	}
	return m, nil
}

// pagination validates the shared limit/offset arguments.
func pagination(a Args) (limit, offset int, err error) {
	limit = a.Int("limit", 20)
	if limit < 1 {
		return 0, 0, fmt.Errorf("limit must be at least 1")
	}
	if limit > 100 {
		return 0, 0, fmt.Errorf("limit must be at most 100")
	}
	offset = a.Int("offset", 0)
	if offset < 0 {
		return 0, 0, fmt.Errorf("offset must be at least 0")
	}
	return limit, offset, nil
}

// stringList converts a JSON array argument to trimmed strings.
func stringList(key string, v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array of strings", key)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s must contain only strings", key)
		}
		out = append(out, strings.TrimSpace(s))
	}
	return out, nil
}

// objectList validates that an array argument holds only objects. The
// objects pass through to the payload untouched.
func objectList(key string, v any) ([]any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array of objects", key)
	}
	for _, item := range items {
		if _, ok := item.(map[string]any); !ok {
			return nil, fmt.Errorf("%s must contain only objects", key)
		}
	}
	return items, nil
}

// optionalObjectList is objectList for arguments that may be absent.
func optionalObjectList(a Args, key string) ([]any, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return nil, nil
	}
	return objectList(key, v)
}
