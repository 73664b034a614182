package markdown

import "strings"

// Block is a generated region of a note delimited by two marker lines.
// Text outside the markers belongs to the user and is never rewritten.
type Block struct {
	Start string
	End   string
}

func (b Block) bounds(body string) (int, int, bool) {
	start := strings.Index(body, b.Start)
	if start < 0 {
		return 0, 0, false
	}
	end := strings.Index(body[start:], b.End)
	if end < 0 {
		return 0, 0, false
	}
	return start, start + end + len(b.End), true
}

// Replace swaps the generated region for content, appending the block when
// body has none yet.
func (b Block) Replace(body, content string) string {
	block := b.Start + "\n" + content + "\n" + b.End
	if start, end, ok := b.bounds(body); ok {
		return body[:start] + block + body[end:]
	}
	if strings.TrimSpace(body) == "" {
		return block + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + "\n" + block + "\n"
	}
	return body + "\n\n" + block + "\n"
}

// Extract returns the generated content, without markers.
func (b Block) Extract(body string) (string, bool) {
	start, end, ok := b.bounds(body)
	if !ok {
		return "", false
	}
	inner := body[start+len(b.Start) : end-len(b.End)]
	return strings.Trim(inner, "\n"), true
}

// Strip removes the generated region and the blank lines around it.
func (b Block) Strip(body string) string {
	start, end, ok := b.bounds(body)
	if !ok {
		return body
	}
	before := strings.TrimRight(body[:start], "\n")
	after := strings.TrimLeft(body[end:], "\n")
	switch {
	case before == "":
		return after
	case after == "":
		return before + "\n"
	default:
		return before + "\n\n" + after
	}
}
