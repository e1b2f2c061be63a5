package parser

import (
	"bytes"
	stderrors "errors"
	"strconv"

	"github.com/mcncl/bdecode/internal/errors"
	"github.com/mcncl/bdecode/internal/models"
)

// DefaultMaxDepth bounds list and dictionary nesting when Options.MaxDepth
// is left at zero.
const DefaultMaxDepth = 512

// Options controls decoder strictness.
type Options struct {
	// Strict rejects non-canonical encodings: unsorted or duplicate
	// dictionary keys, zero-padded string lengths and trailing bytes.
	Strict bool
	// MaxDepth limits container nesting. Negative disables the limit.
	MaxDepth int
}

// Decoder decodes bencoded buffers. It holds no per-call state and can be
// shared between goroutines.
type Decoder struct {
	opts Options
}

// NewDecoder creates a Decoder with the given options.
func NewDecoder(opts Options) *Decoder {
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Decoder{opts: opts}
}

// Decode decodes one value from the start of data with default options. It
// returns the value and the number of bytes it occupied; bytes after the
// value are left untouched.
func Decode(data []byte) (models.Value, int, error) {
	return NewDecoder(Options{}).Decode(data)
}

// Decode decodes one value from the start of data and returns it together
// with the number of bytes consumed.
func (d *Decoder) Decode(data []byte) (models.Value, int, error) {
	c := &cursor{data: data, opts: d.opts}
	v, err := c.decodeValue(0)
	if err != nil {
		return nil, c.pos, err
	}
	if d.opts.Strict && c.pos != len(data) {
		return nil, c.pos, errors.NewMalformedInput("trailing data", c.pos)
	}
	return v, c.pos, nil
}

// cursor is the position of the next unparsed byte. Every parse routine
// leaves pos on the first byte after the value it produced.
type cursor struct {
	data []byte
	pos  int
	opts Options
}

func (c *cursor) fail(reason string, offset int) error {
	return errors.NewMalformedInput(reason, offset)
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.data)
}

// decodeValue dispatches on the tag byte under the cursor.
func (c *cursor) decodeValue(depth int) (models.Value, error) {
	if c.atEnd() {
		return nil, c.fail("unrecognized tag", c.pos)
	}

	switch tag := c.data[c.pos]; {
	case isDigit(tag):
		return c.decodeString()
	case tag == 'i':
		return c.decodeInteger()
	case tag == 'l':
		if err := c.enter(depth); err != nil {
			return nil, err
		}
		return c.decodeList(depth + 1)
	case tag == 'd':
		if err := c.enter(depth); err != nil {
			return nil, err
		}
		return c.decodeDictionary(depth + 1)
	default:
		return nil, c.fail("unrecognized tag", c.pos)
	}
}

func (c *cursor) enter(depth int) error {
	if c.opts.MaxDepth > 0 && depth >= c.opts.MaxDepth {
		return c.fail("nesting too deep", c.pos)
	}
	return nil
}

// decodeString reads <length>:<bytes>.
func (c *cursor) decodeString() (models.ByteString, error) {
	start := c.pos
	i := start
	for i < len(c.data) && isDigit(c.data[i]) {
		i++
	}
	if i >= len(c.data) || c.data[i] != ':' {
		return nil, c.fail("missing colon", i)
	}

	prefix := c.data[start:i]
	if c.opts.Strict && len(prefix) > 1 && prefix[0] == '0' {
		return nil, c.fail("leading zero in string length", start)
	}
	n, err := strconv.ParseInt(string(prefix), 10, 64)
	if err != nil {
		return nil, c.fail("invalid string length", start)
	}

	body := i + 1
	if n > int64(len(c.data)-body) {
		return nil, c.fail("truncated string", body)
	}

	end := body + int(n)
	s := make(models.ByteString, n)
	copy(s, c.data[body:end])
	c.pos = end
	return s, nil
}

// decodeInteger reads i<signed decimal>e.
func (c *cursor) decodeInteger() (models.Integer, error) {
	start := c.pos
	i := start + 1
	negative := i < len(c.data) && c.data[i] == '-'
	if negative {
		i++
	}

	digits := i
	for ; i < len(c.data); i++ {
		if c.data[i] == 'e' {
			break
		}
		if !isDigit(c.data[i]) {
			return 0, c.fail("invalid digit", i)
		}
	}
	if i >= len(c.data) {
		return 0, c.fail("missing 'e'", start)
	}

	switch {
	case i == digits:
		return 0, c.fail("empty integer", start)
	case c.data[digits] == '0' && i-digits > 1:
		return 0, c.fail("leading zero", digits)
	case negative && c.data[digits] == '0':
		return 0, c.fail("negative zero", start)
	}

	n, err := strconv.ParseInt(string(c.data[start+1:i]), 10, 64)
	if err != nil {
		if stderrors.Is(err, strconv.ErrRange) {
			return 0, c.fail("integer overflow", start)
		}
		return 0, c.fail("invalid integer", start)
	}

	c.pos = i + 1
	return models.Integer(n), nil
}

// decodeList reads l<value>*e.
func (c *cursor) decodeList(depth int) (models.List, error) {
	start := c.pos
	c.pos++

	list := make(models.List, 0)
	for {
		if c.atEnd() {
			return nil, c.fail("unterminated list", start)
		}
		if c.data[c.pos] == 'e' {
			c.pos++
			return list, nil
		}

		v, err := c.decodeValue(depth)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
}

// decodeDictionary reads d(<key><value>)*e.
func (c *cursor) decodeDictionary(depth int) (*models.Dictionary, error) {
	start := c.pos
	c.pos++

	dict := models.NewDictionary()
	var prev []byte
	for {
		if c.atEnd() {
			return nil, c.fail("unterminated dictionary", start)
		}
		if c.data[c.pos] == 'e' {
			c.pos++
			return dict, nil
		}

		keyAt := c.pos
		k, err := c.decodeValue(depth)
		if err != nil {
			return nil, err
		}
		key, ok := k.(models.ByteString)
		if !ok {
			return nil, c.fail("dictionary key must be a string", keyAt)
		}

		if c.opts.Strict && prev != nil {
			switch cmp := bytes.Compare(prev, key); {
			case cmp == 0:
				return nil, c.fail("duplicate dictionary key", keyAt)
			case cmp > 0:
				return nil, c.fail("dictionary keys not sorted", keyAt)
			}
		}
		prev = key

		if c.atEnd() || c.data[c.pos] == 'e' {
			return nil, c.fail("missing dictionary value", c.pos)
		}
		v, err := c.decodeValue(depth)
		if err != nil {
			return nil, err
		}
		dict.Set(key, v)
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
