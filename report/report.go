// Package report renders script runs as text, markdown, HTML or JSON.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/odvcencio/furry-ref/history"
	"github.com/odvcencio/furry-ref/script"
)

// Format selects a renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatText, FormatMarkdown, FormatHTML, FormatJSON}

// DefaultStyle is the chroma style used when none is given.
const DefaultStyle = "monokai"

// maxDetailWidth bounds the detail column of text tables.
const maxDetailWidth = 48

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format %q: must be one of %v", name, Formats)
}

// Render writes result to w in the given format.
func Render(w io.Writer, result *script.Result, format Format) error {
	switch format {
	case FormatText:
		return RenderText(w, result)
	case FormatMarkdown:
		return RenderMarkdown(w, result)
	case FormatHTML:
		return RenderHTML(w, result)
	case FormatJSON:
		return RenderJSON(w, result)
	default:
		return fmt.Errorf("invalid format %q", format)
	}
}

// RenderText writes an aligned table of frames followed by the final document.
func RenderText(w io.Writer, result *script.Result) error {
	rows := [][]string{{"STEP", "ACTION", "DETAIL", "POS", "LEN", "LABEL"}}
	for _, f := range result.Frames {
		rows = append(rows, []string{
			strconv.Itoa(f.Step),
			f.Action,
			runewidth.Truncate(f.Detail, maxDetailWidth, "..."),
			strconv.Itoa(f.Position),
			strconv.Itoa(f.Length),
			f.Label,
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "script: %s\n\n", result.Name)
	writeTable(&b, rows)
	fmt.Fprintf(&b, "\nfinal: %s\n", result.Final)
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderEntries writes the history list as an aligned table. The current
// entry is marked with '*'.
func RenderEntries(w io.Writer, entries []history.Entry) error {
	rows := [][]string{{"", "INDEX", "ID", "TIME", "LABEL"}}
	for _, e := range entries {
		marker := ""
		if e.Current {
			marker = "*"
		}
		rows = append(rows, []string{
			marker,
			strconv.Itoa(e.Index),
			e.ID.String(),
			e.Time.UTC().Format("2006-01-02T15:04:05Z"),
			e.Label,
		})
	}
	var b strings.Builder
	writeTable(&b, rows)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTable(b *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteByte('\n')
	}
}

// RenderMarkdown writes the frames as a markdown table with the final
// document in a fenced block.
func RenderMarkdown(w io.Writer, result *script.Result) error {
	final, err := indentJSON(result.Final)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", result.Name)
	b.WriteString("| Step | Action | Detail | Position | Length | Label |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, f := range result.Frames {
		fmt.Fprintf(&b, "| %d | %s | %s | %d | %d | %s |\n",
			f.Step, f.Action, escapeCell(f.Detail), f.Position, f.Length, escapeCell(f.Label))
	}
	b.WriteString("\n## Final\n\n```json\n")
	b.WriteString(final)
	b.WriteString("\n```\n")
	_, err = io.WriteString(w, b.String())
	return err
}

// RenderHTML converts the markdown rendering to HTML.
func RenderHTML(w io.Writer, result *script.Result) error {
	var src bytes.Buffer
	if err := RenderMarkdown(&src, result); err != nil {
		return err
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := md.Convert(src.Bytes(), w); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

// RenderJSON writes the result as indented JSON.
func RenderJSON(w io.Writer, result *script.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// Highlight writes an indented, colourised JSON snapshot for terminals.
func Highlight(w io.Writer, snapshot json.RawMessage, style string) error {
	if style == "" {
		style = DefaultStyle
	}
	text, err := indentJSON(snapshot)
	if err != nil {
		return err
	}
	if err := quick.Highlight(w, text+"\n", "json", "terminal256", style); err != nil {
		return fmt.Errorf("highlighting snapshot: %w", err)
	}
	return nil
}

func indentJSON(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "null", nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("indenting snapshot: %w", err)
	}
	return buf.String(), nil
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
