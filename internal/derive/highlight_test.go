package derive

import "testing"

func TestHighlightAllergens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "empty", text: "", want: ""},
		{name: "single word", text: "Zawiera mleko i soję", want: "Zawiera <strong>mleko</strong> i soję"},
		{name: "inflected form is not a catalogue word", text: "Czekolada z mlekiem", want: "Czekolada z mlekiem"},
		{name: "case preserved", text: "MLEKO w proszku", want: "<strong>MLEKO</strong> w proszku"},
		{name: "escaping", text: "Cukier <b> & mleko", want: "Cukier &lt;b&gt; &amp; <strong>mleko</strong>"},
		{name: "phrase before its own word", text: "orzechy laskowe 14%", want: "<strong>orzechy laskowe</strong> 14%"},
		{name: "punctuation is a boundary", text: "(mleko), jaja.", want: "(<strong>mleko</strong>), <strong>jaja</strong>."},
		{name: "polish letter before", text: "żmleko", want: "żmleko"},
		{name: "polish letter after", text: "mlekoś", want: "mlekoś"},
		{name: "digits are not letters", text: "1mleko2", want: "1<strong>mleko</strong>2"},
		{name: "shorter term after longer fails", text: "jajami", want: "jajami"},
		{name: "two words", text: "gluten pszenny, sezam", want: "<strong>gluten</strong> pszenny, <strong>sezam</strong>"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HighlightAllergens(tt.text); got != tt.want {
				t.Fatalf("HighlightAllergens(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestHighlighterOrdersTermsByLength(t *testing.T) {
	t.Parallel()

	h := NewHighlighter("sezam", "  ", "sezam czarny")
	got := h.Highlight("sezam czarny i sezam")
	want := "<strong>sezam czarny</strong> i <strong>sezam</strong>"
	if got != want {
		t.Fatalf("Highlight = %q, want %q", got, want)
	}
}

func TestHighlighterWithoutTermsEscapesOnly(t *testing.T) {
	t.Parallel()

	h := NewHighlighter()
	if got := h.Highlight("a < b"); got != "a &lt; b" {
		t.Fatalf("Highlight = %q", got)
	}
}
