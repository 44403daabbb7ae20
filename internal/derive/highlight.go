package derive

import (
	"sort"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/unicode/norm"
)

const (
	emphasisOpen  = "<strong>"
	emphasisClose = "</strong>"
	polishLetters = "ąęóśźżćńłĄĘÓŚŹŻĆŃŁ"
)

// AllergenTerms is the catalogue of words that mark allergen-bearing
// ingredients in Polish label text.
var AllergenTerms = []string{
	"orzeszki arachidowe",
	"orzechy laskowe",
	"mleko", "mleka", "mleczne", "mleczny",
	"soja", "soi", "sojowa", "sojowe",
	"gluten", "pszenna",
	"jaja", "jaj",
	"orzechy", "migdały", "pistacje", "pisatacje",
	"sezam",
}

var defaultHighlighter = NewHighlighter(AllergenTerms...)

// Highlighter wraps whole-word catalogue matches in emphasis markup.
type Highlighter struct {
	terms [][]rune
}

// NewHighlighter prepares a highlighter for terms. Longer terms are tried
// first so a phrase is never split by one of its own words.
func NewHighlighter(terms ...string) *Highlighter {
	prepared := make([][]rune, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(norm.NFC.String(term))
		if term == "" {
			continue
		}
		prepared = append(prepared, []rune(term))
	}
	sort.SliceStable(prepared, func(i, j int) bool {
		return len(prepared[i]) > len(prepared[j])
	})
	return &Highlighter{terms: prepared}
}

// HighlightAllergens marks allergen words in text using AllergenTerms.
func HighlightAllergens(text string) string {
	return defaultHighlighter.Highlight(text)
}

// Highlight returns text as HTML: every case-insensitive whole-word match of
// a catalogue term is wrapped in <strong>, everything else is escaped. A match
// touching a Latin or Polish letter on either side is not a whole word.
func (h *Highlighter) Highlight(text string) string {
	if text == "" {
		return ""
	}

	runes := []rune(norm.NFC.String(text))
	var b strings.Builder
	b.Grow(len(text) + 32)

	plainStart := 0
	for i := 0; i < len(runes); i++ {
		if i > 0 && isWordLetter(runes[i-1]) {
			continue
		}
		n := h.matchAt(runes, i)
		if n == 0 {
			continue
		}
		b.WriteString(templ.EscapeString(string(runes[plainStart:i])))
		b.WriteString(emphasisOpen)
		b.WriteString(templ.EscapeString(string(runes[i : i+n])))
		b.WriteString(emphasisClose)
		i += n - 1
		plainStart = i + 1
	}
	b.WriteString(templ.EscapeString(string(runes[plainStart:])))
	return b.String()
}

// matchAt returns the rune length of the first term matching at i, or 0.
func (h *Highlighter) matchAt(runes []rune, i int) int {
	for _, term := range h.terms {
		end := i + len(term)
		if end > len(runes) {
			continue
		}
		if !strings.EqualFold(string(runes[i:end]), string(term)) {
			continue
		}
		if end < len(runes) && isWordLetter(runes[end]) {
			continue
		}
		return len(term)
	}
	return 0
}

func isWordLetter(r rune) bool {
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return true
	}
	return strings.ContainsRune(polishLetters, r)
}
