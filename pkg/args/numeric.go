package args

// IsDecimal reports whether s is shaped like a decimal number: an optional sign,
// digits, at most one decimal point and at most one signed exponent ("1e-3").
// It does not parse the number and never allocates.
func IsDecimal(s string) bool {
	n := len(s)
	if n == 0 || !isDigitOrSign(s[0]) || !containsDigit(s) {
		return false
	}

	hadExponent := false
	hadPoint := false
	for i := 1; i < n; i++ {
		c := s[i]
		if isDigit(c) {
			continue
		}
		if hadExponent {
			return false
		}
		switch {
		case c == '.' && !hadPoint:
			hadPoint = true
		case (c == 'e' || c == 'E') && i+2 < n && isSign(s[i+1]):
			hadExponent = true
			i++
		default:
			return false
		}
	}
	return true
}

// IsInteger reports whether s is decimal-shaped and made only of digits and signs.
func IsInteger(s string) bool {
	if !IsDecimal(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigitOrSign(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSign(c byte) bool {
	return c == '+' || c == '-'
}

func isDigitOrSign(c byte) bool {
	return isDigit(c) || isSign(c)
}

func containsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			return true
		}
	}
	return false
}
