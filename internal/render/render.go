// Package render turns Torna responses into the strings handed back to
// the caller: pretty JSON, or a markdown layout per interface, both
// bounded by the character budget.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/li7hai26/torna-mcp/internal/torna"
)

// CharacterLimit bounds every rendered response.
const CharacterLimit = 25000

// TruncationMarker terminates truncated output.
const TruncationMarker = "\n\n... (response truncated due to length limit)"

const truncationReserve = 100

// Format selects the rendered output style.
type Format int

const (
	FormatMarkdown Format = iota
	FormatJSON
)

// ParseFormat maps the response_format argument to a Format. Anything
// other than "json" renders markdown.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatMarkdown
}

// Render produces the final tool output for one response. Both formats
// pass through the character budget after rendering.
func Render(resp *torna.Response, format Format, interfaceName string) string {
	var text string
	if format == FormatJSON {
		text = renderJSON(resp)
	} else {
		text = renderMarkdown(resp, interfaceName)
	}
	return Truncate(text)
}

// Truncate enforces the character budget: over-budget text becomes a
// bounded prefix plus a single marker. The cut never splits a rune.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= CharacterLimit {
		return s
	}
	limit := CharacterLimit - truncationReserve
	n := 0
	end := len(s)
	for i := range s {
		if n == limit {
			end = i
			break
		}
		n++
	}
	return s[:end] + TruncationMarker
}

// renderJSON re-indents the raw reply, preserving key order and number
// forms exactly as received.
func renderJSON(resp *torna.Response) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, resp.Raw, "", "  "); err != nil {
		return string(resp.Raw)
	}
	return buf.String()
}

func renderMarkdown(resp *torna.Response, interfaceName string) string {
	lines := []string{fmt.Sprintf("# %s Result", interfaceName), ""}

	if resp.Code.Success() {
		lines = append(lines, "✅ **Operation completed successfully**", "")
		data := decodeData(resp.Data)

		switch interfaceName {
		case "doc.push":
			lines = renderDocPush(lines, data)
		case "doc.category.create":
			lines = renderCategoryCreate(lines, data)
		case "doc.category.name.update":
			lines = append(lines, "Category name has been updated successfully.")
		case "doc.list":
			lines = renderDocList(lines, data)
		case "doc.detail":
			lines = renderDocDetail(lines, data)
		case "doc.details":
			lines = renderDocDetails(lines, data)
		default:
			lines = renderGeneric(lines, data)
		}
	} else {
		code := string(resp.Code)
		if code == "" {
			code = "Unknown"
		}
		msg := resp.Msg
		if msg == "" {
			msg = "Unknown error"
		}
		lines = append(lines,
			"❌ **Operation failed**",
			"",
			"- **Error Code**: "+code,
			"- **Error Message**: "+msg,
		)
	}

	return strings.Join(lines, "\n")
}

func renderDocPush(lines []string, data any) []string {
	if m, ok := data.(map[string]any); ok && truthy(m) {
		lines = append(lines, "## Push Result")
		lines = append(lines, "- **Document Name**: "+field(m, "name", "N/A"))
		lines = append(lines, "- **Document ID**: "+field(m, "id", "N/A"))
		lines = append(lines, "- **Status**: "+field(m, "status", "N/A"))
		return lines
	}
	return append(lines, "Documents have been pushed successfully.")
}

func renderCategoryCreate(lines []string, data any) []string {
	if m, ok := data.(map[string]any); ok && truthy(m) {
		lines = append(lines, "## Category Created")
		lines = append(lines, "- **Category Name**: "+field(m, "name", "N/A"))
		lines = append(lines, "- **Category ID**: "+field(m, "id", "N/A"))
		return lines
	}
	return append(lines, "Category has been created successfully.")
}

func renderDocList(lines []string, data any) []string {
	m, _ := data.(map[string]any)
	total := "0"
	var docs []any
	if m != nil {
		total = field(m, "total", "0")
		docs, _ = m["list"].([]any)
	}

	lines = append(lines, fmt.Sprintf("## Document List (Total: %s)", total), "")
	if len(docs) == 0 {
		return append(lines, "No documents found.")
	}

	shown := docs
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for _, item := range shown {
		doc := asMap(item)
		lines = append(lines, "### "+field(doc, "name", "Untitled"))
		lines = append(lines, "- **ID**: "+field(doc, "id", "N/A"))
		lines = append(lines, "- **URL**: "+field(doc, "url", "N/A"))
		lines = append(lines, "- **Method**: "+field(doc, "httpMethod", "N/A"))
		if truthy(doc["description"]) {
			lines = append(lines, "- **Description**: "+display(doc["description"]))
		}
		lines = append(lines, "")
	}
	if len(docs) > 10 {
		lines = append(lines, fmt.Sprintf("... and %d more documents", len(docs)-10))
	}
	return lines
}

func renderDocDetail(lines []string, data any) []string {
	doc, _ := data.(map[string]any)
	if !truthy(doc) {
		return append(lines, "Document not found.")
	}

	lines = append(lines, "## "+field(doc, "name", "Document Detail"))
	lines = append(lines, "- **ID**: "+field(doc, "id", "N/A"))
	lines = append(lines, "- **URL**: "+field(doc, "url", "N/A"))
	lines = append(lines, "- **Method**: "+field(doc, "httpMethod", "N/A"))
	lines = append(lines, "- **Content Type**: "+field(doc, "contentType", "N/A"))
	if truthy(doc["description"]) {
		lines = append(lines, "- **Description**: "+display(doc["description"]))
	}
	lines = renderParams(lines, "Request Parameters", doc["requestParams"])
	lines = renderParams(lines, "Response Parameters", doc["responseParams"])
	return lines
}

func renderParams(lines []string, title string, v any) []string {
	params, _ := v.([]any)
	if len(params) == 0 {
		return lines
	}
	lines = append(lines, "", "### "+title)
	for _, item := range params {
		param := asMap(item)
		lines = append(lines, fmt.Sprintf("- **%s** (%s)", field(param, "name", "N/A"), field(param, "type", "N/A")))
		if truthy(param["description"]) {
			lines = append(lines, "  - "+display(param["description"]))
		}
		if truthy(param["example"]) {
			lines = append(lines, "  - Example: "+display(param["example"]))
		}
	}
	return lines
}

func renderDocDetails(lines []string, data any) []string {
	docs, _ := data.([]any)
	lines = append(lines, fmt.Sprintf("## Batch Document Details (%d documents)", len(docs)), "")
	for i, item := range docs {
		doc := asMap(item)
		lines = append(lines, fmt.Sprintf("### %d. %s", i+1, field(doc, "name", "Untitled")))
		lines = append(lines, "- **ID**: "+field(doc, "id", "N/A"))
		lines = append(lines, "- **URL**: "+field(doc, "url", "N/A"))
		lines = append(lines, "- **Method**: "+field(doc, "httpMethod", "N/A"))
		if truthy(doc["description"]) {
			lines = append(lines, "- **Description**: "+display(doc["description"]))
		}
		lines = append(lines, "")
	}
	return lines
}

// renderGeneric covers the interfaces without a dedicated layout: the
// dictionary, module, enum, and debug-env operations. Keys come out
// sorted so output is deterministic.
func renderGeneric(lines []string, data any) []string {
	switch v := data.(type) {
	case nil:
		return lines
	case map[string]any:
		if len(v) == 0 {
			return lines
		}
		for _, k := range sortedKeys(v) {
			val := v[k]
			switch val.(type) {
			case map[string]any, []any:
				lines = append(lines, "### "+k, "")
				lines = renderGenericValue(lines, val)
			default:
				lines = append(lines, fmt.Sprintf("- **%s**: %s", k, display(val)))
			}
		}
		return lines
	case []any:
		return renderGenericList(lines, v)
	default:
		return append(lines, display(v))
	}
}

// renderGenericValue renders one nested object or list under its heading.
func renderGenericValue(lines []string, v any) []string {
	switch t := v.(type) {
	case map[string]any:
		for _, k := range sortedKeys(t) {
			lines = append(lines, fmt.Sprintf("- **%s**: %s", k, display(t[k])))
		}
		return append(lines, "")
	case []any:
		return renderGenericList(lines, t)
	}
	return lines
}

func renderGenericList(lines []string, items []any) []string {
	if len(items) == 0 {
		return append(lines, "No data found.")
	}
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			lines = append(lines, "### "+field(m, "name", "Unknown"))
			for _, k := range sortedKeys(m) {
				if k == "name" {
					continue
				}
				lines = append(lines, fmt.Sprintf("- **%s**: %s", k, display(m[k])))
			}
			lines = append(lines, "")
		} else {
			lines = append(lines, "- "+display(item))
		}
	}
	return lines
}

// decodeData unwraps the response data field for the markdown layouts.
func decodeData(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	if m == nil {
		m = map[string]any{}
	}
	return m
}

// field returns the display form of m[key], or fallback when the key is
// missing or null.
func field(m map[string]any, key, fallback string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return fallback
	}
	return display(v)
}

// display renders one decoded JSON value. Numbers keep their plain
// decimal form; nested values collapse to compact JSON.
func display(v any) string {
	switch t := v.(type) {
	case nil:
		return "N/A"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// truthy mirrors how optional response fields are tested: nil, false,
// empty strings, zero numbers, and empty collections all read as absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	}
	return true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
