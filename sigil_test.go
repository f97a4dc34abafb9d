package tweetlate

import (
	"reflect"
	"testing"
)

func TestMask_Extraction(t *testing.T) {
	masked := Mask("@joz hello #there guys http://foobar.com how")

	if masked.Template != "XZ0 hello XZ1 guys XZ2 how" {
		t.Errorf("template = %q, want %q", masked.Template, "XZ0 hello XZ1 guys XZ2 how")
	}

	want := []string{"@joz", "#there", "http://foobar.com"}
	if !reflect.DeepEqual(masked.Tokens, want) {
		t.Errorf("tokens = %v, want %v", masked.Tokens, want)
	}
}

func TestMask_NoSigils(t *testing.T) {
	masked := Mask("just ordinary words here")

	if masked.Template != "just ordinary words here" {
		t.Errorf("template changed: %q", masked.Template)
	}
	if len(masked.Tokens) != 0 {
		t.Errorf("expected no tokens, got %v", masked.Tokens)
	}
}

func TestMaskUnmask_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"plain", "nothing special at all"},
		{"handle only", "@someone"},
		{"mixed", "@joz hello #there guys http://foobar.com how"},
		{"https url", "read this https://example.org/a/b?q=1 now"},
		{"adjacent sigils", "@a @b #c"},
		{"trailing hashtag", "big news #breaking"},
		{"url with fragment", "see http://x.com/page#section for details"},
		{"many sigils", "@a @b @c @d @e @f @g @h @i @j @k #l"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			masked := Mask(tt.text)
			got := Unmask(masked.Template, masked.Tokens)
			if got != tt.text {
				t.Errorf("round trip = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestUnmask_SurvivesTranslatedSurroundings(t *testing.T) {
	masked := Mask("@joz hello #there guys http://foobar.com how")

	// A translator rewrites the words but reproduces placeholders.
	translated := "XZ0 hola XZ1 amigos XZ2 como"

	got := Unmask(translated, masked.Tokens)
	want := "@joz hola #there amigos http://foobar.com como"
	if got != want {
		t.Errorf("Unmask = %q, want %q", got, want)
	}
}

func TestUnmask_NoTokensIsNoOp(t *testing.T) {
	if got := Unmask("hola XZ0 mundo", nil); got != "hola XZ0 mundo" {
		t.Errorf("Unmask with no tokens altered text: %q", got)
	}
}

func TestUnmask_OutOfRangeIndexLeftAlone(t *testing.T) {
	got := Unmask("XZ0 and XZ7", []string{"@joz"})
	if got != "@joz and XZ7" {
		t.Errorf("Unmask = %q, want %q", got, "@joz and XZ7")
	}
}

func TestMask_DoubleDigitIndexes(t *testing.T) {
	text := "@a0 @a1 @a2 @a3 @a4 @a5 @a6 @a7 @a8 @a9 @a10 end"
	masked := Mask(text)

	if len(masked.Tokens) != 11 {
		t.Fatalf("expected 11 tokens, got %d", len(masked.Tokens))
	}
	if got := Unmask(masked.Template, masked.Tokens); got != text {
		t.Errorf("round trip = %q, want %q", got, text)
	}
}
