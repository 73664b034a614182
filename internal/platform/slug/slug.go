package slug

import (
	"regexp"
	"strings"
)

// MaxLength caps slugs so note file names stay portable.
const MaxLength = 64

var (
	nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)
	folds       = strings.NewReplacer("&", " dan ", "é", "e", "è", "e", "ü", "u", "ö", "o", "ä", "a")
)

// Make joins the non-empty parts into a lowercase dash-separated slug.
func Make(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	s := folds.Replace(strings.ToLower(strings.Join(kept, " ")))
	s = strings.Trim(nonAlphaNum.ReplaceAllString(s, "-"), "-")
	if len(s) > MaxLength {
		s = s[:MaxLength]
		if cut := strings.LastIndexByte(s, '-'); cut > MaxLength/2 {
			s = s[:cut]
		}
		s = strings.TrimRight(s, "-")
	}
	if s == "" {
		return "untitled"
	}
	return s
}
