package util

// TruncateRunes cuts s to at most maxRunes characters (rune-based, not
// byte-based). No marker is appended; callers decide how to flag the cut.
func TruncateRunes(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}
