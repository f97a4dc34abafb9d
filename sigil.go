package tweetlate

import (
	"regexp"
	"strconv"
)

// Sigils are the substrings that must pass through translation
// untouched: @handles, #hashtags, and URLs. Mask replaces each with a
// positional XZ<n> placeholder before the text is sent to a translation
// service, and Unmask restores them afterwards. The XZ alphabet is
// chosen because translation engines tend to copy it through verbatim;
// a model that rewrites a placeholder degrades restoration to cosmetic
// corruption rather than an error.

var (
	// URL alternative first so "http://x.com#frag" is captured whole
	// rather than split into a URL and a hashtag.
	reSigil = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+.-]*://[^\s]+|@\w+|#\w+`)

	rePlaceholder = regexp.MustCompile(`XZ(\d+)`)
)

// MaskedText is the result of masking: a template with XZ<n>
// placeholders and the tokens they stand for. Tokens[i] corresponds to
// placeholder XZ<i>.
type MaskedText struct {
	Template string
	Tokens   []string
}

// Mask replaces every sigil in text with a placeholder, numbering them
// left to right from zero. Text without sigils comes back unchanged
// with a nil token list.
func Mask(text string) MaskedText {
	var tokens []string
	template := reSigil.ReplaceAllStringFunc(text, func(match string) string {
		id := "XZ" + strconv.Itoa(len(tokens))
		tokens = append(tokens, match)
		return id
	})
	return MaskedText{Template: template, Tokens: tokens}
}

// Unmask substitutes each XZ<n> placeholder in template with tokens[n].
// Placeholders with out-of-range indexes are left as-is; with no tokens
// the call is a no-op.
func Unmask(template string, tokens []string) string {
	if len(tokens) == 0 {
		return template
	}
	return rePlaceholder.ReplaceAllStringFunc(template, func(match string) string {
		idx, err := strconv.Atoi(match[2:])
		if err != nil || idx < 0 || idx >= len(tokens) {
			return match
		}
		return tokens[idx]
	})
}
