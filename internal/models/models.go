package models

// Kind identifies which of the four bencode variants a Value holds.
type Kind int

const (
	KindByteString Kind = iota
	KindInteger
	KindList
	KindDictionary
)

func (k Kind) String() string {
	switch k {
	case KindByteString:
		return "string"
	case KindInteger:
		return "integer"
	case KindList:
		return "list"
	case KindDictionary:
		return "dictionary"
	default:
		return "unknown"
	}
}

// Value is a decoded bencode value. The concrete type is one of
// ByteString, Integer, List or *Dictionary.
type Value interface {
	Kind() Kind
}

// ByteString is a length-prefixed byte sequence. It is not guaranteed to be
// valid UTF-8.
type ByteString []byte

// Integer is a signed 64-bit bencode integer.
type Integer int64

// List is an ordered sequence of values.
type List []Value

func (ByteString) Kind() Kind  { return KindByteString }
func (Integer) Kind() Kind     { return KindInteger }
func (List) Kind() Kind        { return KindList }
func (*Dictionary) Kind() Kind { return KindDictionary }

// Dictionary maps byte string keys to values. Keys keep the order in which
// they were first inserted; setting an existing key replaces its value in
// place.
type Dictionary struct {
	keys    []string
	entries map[string]Value
}

// NewDictionary creates an empty Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		keys:    make([]string, 0),
		entries: make(map[string]Value),
	}
}

// Set inserts or replaces the value stored under key.
func (d *Dictionary) Set(key []byte, v Value) {
	k := string(key)
	if _, exists := d.entries[k]; !exists {
		d.keys = append(d.keys, k)
	}
	d.entries[k] = v
}

// Get returns the value stored under key.
func (d *Dictionary) Get(key string) (Value, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// Len returns the number of distinct keys.
func (d *Dictionary) Len() int {
	return len(d.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (d *Dictionary) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// ToNative converts a value tree into plain Go values: string, int64,
// []interface{} and map[string]interface{}.
func ToNative(v Value) interface{} {
	switch val := v.(type) {
	case ByteString:
		return string(val)
	case Integer:
		return int64(val)
	case List:
		arr := make([]interface{}, len(val))
		for i, item := range val {
			arr[i] = ToNative(item)
		}
		return arr
	case *Dictionary:
		obj := make(map[string]interface{}, val.Len())
		for _, k := range val.keys {
			obj[k] = ToNative(val.entries[k])
		}
		return obj
	default:
		return nil
	}
}

// Document holds the result of decoding one top-level value from an input
// buffer.
type Document struct {
	Root     Value
	Consumed int // bytes used by Root
	Size     int // total input length
}

// Trailing returns the number of input bytes left after the root value.
func (d Document) Trailing() int {
	return d.Size - d.Consumed
}
