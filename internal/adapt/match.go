package adapt

import (
	"strings"
	"unicode"
)

func isWordByte(r byte) bool {
	return r == '-' || unicode.IsLetter(rune(r)) || unicode.IsDigit(rune(r))
}

// precedingWord returns the word immediately before position idx, if any.
func precedingWord(text string, idx int) string {
	end := idx
	for end > 0 && text[end-1] == ' ' {
		end--
	}
	start := end
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	return text[start:end]
}

// wordAt returns the full word containing the match starting at idx.
func wordAt(text string, idx, tokenLen int) string {
	start := idx
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	end := idx + tokenLen
	for end < len(text) && isWordByte(text[end]) {
		end++
	}
	return text[start:end]
}

// matchToken finds the first occurrence of token in text that counts as a
// real hit: starts at a word boundary, is not the tail of a longer word
// (plural "s"/"es" excepted), is not part of an exempt word and is not
// qualified by a safe prefix. Text and token must already be lowercase.
// Returns the index or -1.
func matchToken(text, token string) int {
	from := 0
	for {
		rel := strings.Index(text[from:], token)
		if rel < 0 {
			return -1
		}
		idx := from + rel
		from = idx + 1

		if idx > 0 && isWordByte(text[idx-1]) {
			continue
		}
		// Allow plural suffixes only.
		end := idx + len(token)
		if end < len(text) && isWordByte(text[end]) {
			rest := text[end:]
			singular := rest[0] == 's' && (len(rest) == 1 || !isWordByte(rest[1]))
			pluralES := strings.HasPrefix(rest, "es") && (len(rest) == 2 || !isWordByte(rest[2]))
			if !singular && !pluralES {
				continue
			}
		}

		word := wordAt(text, idx, len(token))
		exempt := false
		for _, w := range exemptWords[token] {
			if word == w {
				exempt = true
				break
			}
		}
		if exempt {
			continue
		}

		prev := precedingWord(text, idx)
		safe := false
		for _, p := range safePrefixes[token] {
			if prev == p {
				safe = true
				break
			}
		}
		if safe {
			continue
		}
		return idx
	}
}

// containsToken reports whether text contains a real occurrence of token.
func containsToken(text, token string) bool {
	return matchToken(strings.ToLower(text), token) >= 0
}

// replaceFold replaces every real occurrence of token in s with repl,
// matching case-insensitively but preserving the rest of the string.
func replaceFold(s, token, repl string) string {
	lower := strings.ToLower(s)
	var b strings.Builder
	for {
		idx := matchToken(lower, token)
		if idx < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := idx + len(token)
		// Swallow a plural suffix so "eggs" becomes one flax egg, not
		// "flax eggs".
		if strings.HasPrefix(lower[end:], "es") && (len(lower) == end+2 || !isWordByte(lower[end+2])) {
			end += 2
		} else if strings.HasPrefix(lower[end:], "s") && (len(lower) == end+1 || !isWordByte(lower[end+1])) {
			end++
		}
		b.WriteString(s[:idx])
		b.WriteString(repl)
		s = s[end:]
		lower = lower[end:]
	}
}
