package docpath

import (
	"strconv"
	"strings"
)

type parser struct {
	src string
	pos int
}

func (p *parser) parse() (Path, error) {
	var path Path
	if p.src == "" {
		return path, nil
	}
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c == '[':
			seg, err := p.bracket()
			if err != nil {
				return Path{}, err
			}
			path.Segments = append(path.Segments, seg)
		case c == '.':
			if len(path.Segments) == 0 {
				return Path{}, p.errorf("unexpected '.'")
			}
			p.pos++
			if p.pos >= len(p.src) || p.src[p.pos] == '.' || p.src[p.pos] == '[' {
				return Path{}, p.errorf("expected key after '.'")
			}
			path.Segments = append(path.Segments, Segment{Key: p.key()})
		default:
			if len(path.Segments) > 0 {
				return Path{}, p.errorf("expected '.' or '['")
			}
			path.Segments = append(path.Segments, Segment{Key: p.key()})
		}
	}
	return path, nil
}

func (p *parser) key() string {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '.' && p.src[p.pos] != '[' {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) bracket() (Segment, error) {
	open := p.pos
	p.pos++
	if strings.HasPrefix(p.src[p.pos:], `"`) {
		return p.quotedKey()
	}
	end := strings.IndexByte(p.src[p.pos:], ']')
	if end < 0 {
		p.pos = open
		return Segment{}, p.errorf("unterminated '['")
	}
	body := p.src[p.pos : p.pos+end]
	start := p.pos
	p.pos += end + 1

	seg := Segment{IsIndex: true}
	if strings.HasPrefix(body, "?") {
		seg.Safe = true
		body = body[1:]
	}
	n, err := strconv.Atoi(body)
	if err != nil || body == "" || body[0] == '+' {
		p.pos = start
		return Segment{}, p.errorf("invalid index")
	}
	seg.Index = n
	return seg, nil
}

// quotedKey reads a Go string literal followed by ']'. The literal may
// itself contain ']' and escaped quotes.
func (p *parser) quotedKey() (Segment, error) {
	quoted, err := strconv.QuotedPrefix(p.src[p.pos:])
	if err != nil {
		return Segment{}, p.errorf("invalid quoted key")
	}
	key, err := strconv.Unquote(quoted)
	if err != nil {
		return Segment{}, p.errorf("invalid quoted key")
	}
	p.pos += len(quoted)
	if p.pos >= len(p.src) || p.src[p.pos] != ']' {
		return Segment{}, p.errorf("expected ']' after quoted key")
	}
	p.pos++
	return Segment{Key: key}, nil
}

func (p *parser) errorf(msg string) error {
	return &SyntaxError{Path: p.src, Offset: p.pos, Msg: msg}
}
