package gcscan

// Interest flags lines starting with Prefix (ignoring case and leading whitespace);
// Code is returned when it matches.
type Interest struct {
	Prefix string
	Code   int32
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

func upcaseByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return (b - 'a') + 'A'
	}
	return b
}

func skipWhitespace(line string, ldx int) int {
	for ldx < len(line) && isSpace(line[ldx]) {
		ldx += 1
	}
	return ldx
}

func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for idx := 0; idx < len(prefix); idx += 1 {
		if upcaseByte(s[idx]) != upcaseByte(prefix[idx]) {
			return false
		}
	}
	return true
}

// Classify returns the code of the first interest matching line.
func Classify(line string, interests []Interest) (int32, bool) {
	line = line[skipWhitespace(line, 0):]
	for _, i := range interests {
		if hasPrefixFold(line, i.Prefix) {
			return i.Code, true
		}
	}
	return 0, false
}
