package utils

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultBannedWords is the starter list. Deployments extend it with
// PROFANITY_WORDS.
var DefaultBannedWords = []string{
	"fuck", "fucking", "fucker", "motherfucker", "shit", "bullshit",
	"bastard", "bitch", "dick", "cock", "pussy", "cunt", "asshole",
	"dumbass", "jackass", "retard", "slut", "whore", "nigger", "faggot",
	"douche", "douchebag", "wanker", "twat", "prick", "arsehole",
	"bollocks", "cocksucker", "shithead", "dipshit", "dumbfuck",
}

// Masker replaces banned words with '*' runs of the same rune length.
// A nil Masker returns its input unchanged.
type Masker struct {
	re *regexp.Regexp
}

// NewMasker compiles words into one case-insensitive pattern. ASCII words
// only match on word boundaries; other scripts match as substrings.
func NewMasker(words []string) *Masker {
	uniq := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" && !slices.Contains(uniq, w) {
			uniq = append(uniq, w)
		}
	}
	if len(uniq) == 0 {
		return &Masker{}
	}
	// longest first so a word is not cut short by one of its prefixes
	slices.SortFunc(uniq, func(a, b string) int {
		return utf8.RuneCountInString(b) - utf8.RuneCountInString(a)
	})

	alts := make([]string, len(uniq))
	for i, w := range uniq {
		q := regexp.QuoteMeta(w)
		if isASCIIWord(w) {
			q = `\b` + q + `\b`
		}
		alts[i] = q
	}
	return &Masker{re: regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`)}
}

func (m *Masker) Mask(s string) string {
	if m == nil || m.re == nil || s == "" {
		return s
	}
	return m.re.ReplaceAllStringFunc(s, func(hit string) string {
		return strings.Repeat("*", utf8.RuneCountInString(hit))
	})
}

// SplitWords parses a comma-separated word list.
func SplitWords(csv string) []string {
	var out []string
	for _, w := range strings.Split(csv, ",") {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func isASCIIWord(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return false
		}
	}
	return s != ""
}
