package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// ErrNoFrontmatter is returned by Decode when the note has no leading
// YAML block.
var ErrNoFrontmatter = errors.New("note has no frontmatter")

// split separates the YAML block from the body. CRLF notes are normalised
// first and a closing fence at end of file is accepted.
func split(content string) (raw, body string, ok bool, err error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, fence+"\n") {
		return "", content, false, nil
	}
	rest := content[len(fence)+1:]
	if strings.HasPrefix(rest, fence+"\n") || rest == fence {
		return "", strings.TrimPrefix(strings.TrimPrefix(rest, fence), "\n"), true, nil
	}
	idx := strings.Index(rest, "\n"+fence+"\n")
	if idx < 0 {
		if strings.HasSuffix(rest, "\n"+fence) {
			return rest[:len(rest)-len(fence)-1], "", true, nil
		}
		return "", "", false, fmt.Errorf("invalid frontmatter: missing closing %q", fence)
	}
	return rest[:idx], rest[idx+len(fence)+2:], true, nil
}

// Decode unmarshals the frontmatter of content into meta and returns the
// remaining body.
func Decode(content string, meta any) (string, error) {
	raw, body, ok, err := split(content)
	if err != nil {
		return "", err
	}
	if !ok {
		return body, ErrNoFrontmatter
	}
	if err := yaml.Unmarshal([]byte(raw), meta); err != nil {
		return "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return body, nil
}

// Body returns content without its frontmatter. Malformed frontmatter
// yields the whole content.
func Body(content string) string {
	_, body, _, err := split(content)
	if err != nil {
		return content
	}
	return body
}

// Encode renders meta as a YAML block followed by a blank line and body.
func Encode(meta any, body string) (string, error) {
	var raw bytes.Buffer
	enc := yaml.NewEncoder(&raw)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var buf strings.Builder
	buf.WriteString(fence + "\n")
	buf.Write(raw.Bytes())
	buf.WriteString(fence + "\n")
	if !strings.HasPrefix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString(body)
	return buf.String(), nil
}
