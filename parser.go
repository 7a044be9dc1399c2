package gcscan

// Parser feeds lines through the interest check and, for lines nobody asked
// about, records extrusion moves in the attached hull.
//
// The hull is not owned by the parser: it may be shared, replaced or detached
// (SetHull(nil)) between calls to FeedLine.
type Parser struct {
	interests []Interest
	hull      *Hull
}

func NewParser() *Parser {
	return &Parser{}
}

// RegisterInterest appends an interest. Interests are checked in the order they
// were registered and the first match wins, so a duplicate prefix never matches.
func (p *Parser) RegisterInterest(prefix string, code int32) {
	p.interests = append(p.interests, Interest{Prefix: prefix, Code: code})
}

func (p *Parser) ClearInterests() {
	p.interests = nil
}

func (p *Parser) Interests() []Interest {
	return p.interests
}

func (p *Parser) SetHull(h *Hull) {
	p.hull = h
}

func (p *Parser) Hull() *Hull {
	return p.hull
}

// FeedLine returns the code of the first matching interest. Lines without a
// match only update the hull; for them ok is always false.
func (p *Parser) FeedLine(line string) (code int32, ok bool) {
	code, ok = Classify(line, p.interests)
	if ok {
		return code, true
	}

	if p.hull == nil {
		return 0, false
	}

	// Anything that looks like an extrusion move is remembered. This assumes
	// absolute coordinates.
	ldx := skipWhitespace(line, 0)
	if ldx == len(line) || upcaseByte(line[ldx]) != 'G' {
		return 0, false
	}
	pt, ok := ExtractMove(line)
	if ok {
		// Points off the grid are dropped like malformed numbers.
		_ = p.hull.Insert(pt)
	}
	return 0, false
}
