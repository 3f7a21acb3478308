package dedupe

// TokenSet holds the distinct tokens of one statement.
type TokenSet map[string]struct{}

// Tokenize collects maximal runs of ASCII letters, digits and '_' as-written.
// Every other byte, including all bytes of multi-byte UTF-8 sequences, is a
// separator.
func Tokenize(s string) TokenSet {
	set := make(TokenSet)
	start := -1
	for i := 0; i < len(s); i++ {
		if isTokenByte(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			set[s[start:i]] = struct{}{}
			start = -1
		}
	}
	if start >= 0 {
		set[s[start:]] = struct{}{}
	}
	return set
}

func (t TokenSet) Contains(token string) bool {
	_, ok := t[token]
	return ok
}

// Jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty.
func Jaccard(a, b TokenSet) float64 {
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for tok := range small {
		if large.Contains(tok) {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func isTokenByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
