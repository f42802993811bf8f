package common

import "strings"

// ContainsToken reports whether term occurs in text on word boundaries:
// the characters on either side of the match must not be letters or
// digits. Multi-word terms match as a phrase. Short vocabulary tokens
// like "ring" or "hat" must not fire inside "measuring" or "that".
func ContainsToken(text, term string) bool {
	if term == "" {
		return false
	}
	idx := 0
	for {
		i := strings.Index(text[idx:], term)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(term)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
		if idx >= len(text) {
			return false
		}
	}
}

func isWordChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
