package gcscan

import (
	"strconv"
)

func isCommandByte(b byte) bool {
	return !isSpace(b) && b != ';' && b != 0
}

// commandToken returns the run of command bytes starting at ldx and the index
// just past it.
func commandToken(line string, ldx int) (string, int) {
	start := ldx
	for ldx < len(line) && isCommandByte(line[ldx]) {
		ldx += 1
	}
	return line[start:ldx], ldx
}

// numberPrefix returns the longest prefix of s that reads as a decimal number:
// [+-]digits[.digits][(e|E)[+-]digits].
func numberPrefix(s string) string {
	var idx, digits int
	if idx < len(s) && (s[idx] == '+' || s[idx] == '-') {
		idx += 1
	}
	for idx < len(s) && s[idx] >= '0' && s[idx] <= '9' {
		idx += 1
		digits += 1
	}
	if idx < len(s) && s[idx] == '.' {
		idx += 1
		for idx < len(s) && s[idx] >= '0' && s[idx] <= '9' {
			idx += 1
			digits += 1
		}
	}
	if digits == 0 {
		return ""
	}

	if idx < len(s) && (s[idx] == 'e' || s[idx] == 'E') {
		edx := idx + 1
		if edx < len(s) && (s[edx] == '+' || s[edx] == '-') {
			edx += 1
		}
		if edx < len(s) && s[edx] >= '0' && s[edx] <= '9' {
			for edx < len(s) && s[edx] >= '0' && s[edx] <= '9' {
				edx += 1
			}
			idx = edx
		}
	}
	return s[:idx]
}

func parseNumber(s string) (float64, bool) {
	num := numberPrefix(s)
	if num == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ExtractMove pulls the X and Y of an extrusion move out of a G command line.
// Only the first letter of unrecognized arguments is skipped, so their values are
// read as more argument letters: "G1 F1200 X1 Y2 E3" still finds X, Y and E, but
// a value like "F1E5" would be taken as E5. ok is false unless X, Y and E are all
// present and numeric and E is positive.
func ExtractMove(line string) (Point, bool) {
	ldx := skipWhitespace(line, 0)
	if ldx == len(line) || upcaseByte(line[ldx]) != 'G' {
		return Point{}, false
	}

	_, ldx = commandToken(line, ldx)
	ldx = skipWhitespace(line, ldx)

	var argX, argY, argE string
	for ldx < len(line) && line[ldx] != ';' && line[ldx] != 0 {
		arg := upcaseByte(line[ldx])
		ldx += 1
		switch arg {
		case 'E':
			argE, ldx = commandToken(line, ldx)
		case 'X':
			argX, ldx = commandToken(line, ldx)
		case 'Y':
			argY, ldx = commandToken(line, ldx)
		}
	}

	if argX == "" || argY == "" || argE == "" {
		return Point{}, false
	}
	x, ok := parseNumber(argX)
	if !ok {
		return Point{}, false
	}
	y, ok := parseNumber(argY)
	if !ok {
		return Point{}, false
	}
	e, ok := parseNumber(argE)
	if !ok || !(e > 0) {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}
