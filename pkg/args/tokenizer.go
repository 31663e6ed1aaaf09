package args

import "strings"

// Tokenize splits line into quote-aware tokens.
// It never returns nil; an empty or blank line yields an empty slice.
func Tokenize(line string) []string {
	line = normalize(line)
	n := len(line)
	tokens := make([]string, 0, n/7+1)

	start := 0
	var quote byte
	for i := 0; i < n; i++ {
		c := line[i]
		switch {
		case c == ' ' && quote == 0:
			if i > start {
				tokens = append(tokens, line[start:i])
			}
			start = i + 1
		case c == '"' || c == '\'':
			if quote == 0 {
				if i == 0 || line[i-1] == ' ' {
					quote = c
					start = i + 1
				}
			} else if quote == c && (i+1 >= n || line[i+1] == ' ') {
				quote = 0
				// May be empty: "" is a deliberate empty token.
				tokens = append(tokens, line[start:i])
				i++ // the closing quote is followed by a space or the end
				start = i + 1
			}
		}
	}
	if start < n {
		tokens = append(tokens, line[start:])
	}
	return tokens
}

// TokenizeOptional is Tokenize for callers that distinguish "no input" from an
// empty line: a nil line yields nil.
func TokenizeOptional(line *string) []string {
	if line == nil {
		return nil
	}
	return Tokenize(*line)
}

// normalize trims control characters and spaces from both ends and folds line
// breaks into spaces.
func normalize(line string) string {
	line = strings.TrimFunc(line, func(r rune) bool { return r <= ' ' })
	if strings.IndexByte(line, '\r') < 0 && strings.IndexByte(line, '\n') < 0 {
		return line
	}
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return ' '
		}
		return r
	}, line)
}
