package analyzer

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/bdecode/internal/models"
)

// Summary describes the shape of a decoded value tree.
type Summary struct {
	RootKind      models.Kind
	ByteStrings   int
	Integers      int
	Lists         int
	Dictionaries  int
	MaxDepth      int // containers on the deepest path; a scalar root is 0
	LargestString int
	StringBytes   int
	MinInteger    int64
	MaxInteger    int64
	BinaryStrings int      // byte strings that are not valid UTF-8
	TopLevelKeys  []string // sorted; only set for a dictionary root
}

// Analyzer walks value trees and builds a Summary
type Analyzer struct {
	summary Summary
	seenInt bool
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze summarizes the document's root value
func (a *Analyzer) Analyze(doc models.Document) (Summary, error) {
	if doc.Root == nil {
		return Summary{}, fmt.Errorf("document has no root value")
	}

	a.summary = Summary{RootKind: doc.Root.Kind()}
	a.seenInt = false

	if err := a.walk(doc.Root, 0); err != nil {
		return Summary{}, err
	}

	if d, ok := doc.Root.(*models.Dictionary); ok {
		keys := d.Keys()
		sort.Strings(keys)
		a.summary.TopLevelKeys = keys
	}
	return a.summary, nil
}

func (a *Analyzer) walk(v models.Value, depth int) error {
	switch val := v.(type) {
	case models.ByteString:
		a.summary.ByteStrings++
		a.summary.StringBytes += len(val)
		if len(val) > a.summary.LargestString {
			a.summary.LargestString = len(val)
		}
		if !utf8.Valid(val) {
			a.summary.BinaryStrings++
		}
	case models.Integer:
		a.summary.Integers++
		n := int64(val)
		if !a.seenInt || n < a.summary.MinInteger {
			a.summary.MinInteger = n
		}
		if !a.seenInt || n > a.summary.MaxInteger {
			a.summary.MaxInteger = n
		}
		a.seenInt = true
	case models.List:
		a.summary.Lists++
		a.noteDepth(depth + 1)
		for _, item := range val {
			if err := a.walk(item, depth+1); err != nil {
				return err
			}
		}
	case *models.Dictionary:
		a.summary.Dictionaries++
		a.noteDepth(depth + 1)
		for _, k := range val.Keys() {
			item, _ := val.Get(k)
			if err := a.walk(item, depth+1); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unexpected value type %T", v)
	}
	return nil
}

func (a *Analyzer) noteDepth(depth int) {
	if depth > a.summary.MaxDepth {
		a.summary.MaxDepth = depth
	}
}

// String renders the summary as aligned "name: value" lines
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "root:           %s\n", s.RootKind)
	fmt.Fprintf(&b, "strings:        %d (%d bytes, %d binary, largest %d)\n", s.ByteStrings, s.StringBytes, s.BinaryStrings, s.LargestString)
	if s.Integers > 0 {
		fmt.Fprintf(&b, "integers:       %d (min %d, max %d)\n", s.Integers, s.MinInteger, s.MaxInteger)
	} else {
		fmt.Fprintf(&b, "integers:       0\n")
	}
	fmt.Fprintf(&b, "lists:          %d\n", s.Lists)
	fmt.Fprintf(&b, "dictionaries:   %d\n", s.Dictionaries)
	fmt.Fprintf(&b, "max depth:      %d\n", s.MaxDepth)
	if s.TopLevelKeys != nil {
		fmt.Fprintf(&b, "top-level keys: %s\n", strings.Join(s.TopLevelKeys, ", "))
	}
	return b.String()
}
