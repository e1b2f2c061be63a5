package formatter

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/bdecode/internal/config"
	"github.com/mcncl/bdecode/internal/models"
)

// ErrKeyCollision is returned when two dictionary keys render to the same
// JSON object key.
var ErrKeyCollision = errors.New("dictionary keys collide after rendering")

// Formatter renders decoded bencode values as JSON text
type Formatter struct {
	indent   string
	keyOrder string
	keyCase  string
	bytes    string
}

// NewFormatter creates a Formatter producing compact JSON with sorted keys
func NewFormatter() *Formatter {
	return NewFormatterWithConfig(config.NewConfig().Output)
}

// NewFormatterWithConfig creates a Formatter from output settings
func NewFormatterWithConfig(cfg config.OutputConfig) *Formatter {
	return &Formatter{
		indent:   cfg.Indent,
		keyOrder: cfg.KeyOrder,
		keyCase:  cfg.KeyCase,
		bytes:    cfg.Bytes,
	}
}

// Format renders v as JSON
func (f *Formatter) Format(v models.Value) (string, error) {
	var buf bytes.Buffer
	if err := f.writeValue(&buf, v); err != nil {
		return "", err
	}

	if f.indent == "" {
		return buf.String(), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", f.indent); err != nil {
		return "", fmt.Errorf("failed to indent output: %w", err)
	}
	return out.String(), nil
}

func (f *Formatter) writeValue(buf *bytes.Buffer, v models.Value) error {
	switch val := v.(type) {
	case models.ByteString:
		return writeJSONString(buf, f.encodeBytes(val))
	case models.Integer:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
		return nil
	case models.List:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := f.writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case *models.Dictionary:
		return f.writeDictionary(buf, val)
	default:
		return fmt.Errorf("cannot format value of type %T", v)
	}
}

// renderedKey pairs a raw dictionary key with its output name
type renderedKey struct {
	raw  string
	name string
}

func (f *Formatter) writeDictionary(buf *bytes.Buffer, d *models.Dictionary) error {
	raw := d.Keys()
	keys := make([]renderedKey, len(raw))
	seen := make(map[string]string, len(raw))
	for i, k := range raw {
		name := f.formatKey(k)
		if prev, exists := seen[name]; exists {
			return fmt.Errorf("%w: %q and %q both render as %q", ErrKeyCollision, prev, k, name)
		}
		seen[name] = k
		keys[i] = renderedKey{raw: k, name: name}
	}
	if f.keyOrder != config.KeyOrderInput {
		sort.Slice(keys, func(i, j int) bool { return keys[i].name < keys[j].name })
	}

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(buf, k.name); err != nil {
			return err
		}
		buf.WriteByte(':')

		v, _ := d.Get(k.raw)
		if err := f.writeValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// formatKey renders a dictionary key. Keys stay text regardless of the
// bytes setting; non UTF-8 keys fall back to hex.
func (f *Formatter) formatKey(k string) string {
	if !utf8.ValidString(k) {
		return "hex:" + hex.EncodeToString([]byte(k))
	}

	switch f.keyCase {
	case config.KeyCaseCamel:
		return strcase.ToCamel(k)
	case config.KeyCaseLowerCamel:
		return strcase.ToLowerCamel(k)
	case config.KeyCaseSnake:
		return strcase.ToSnake(k)
	case config.KeyCaseKebab:
		return strcase.ToKebab(k)
	default:
		return k
	}
}

func (f *Formatter) encodeBytes(b models.ByteString) string {
	switch f.bytes {
	case config.BytesHex:
		return hex.EncodeToString(b)
	case config.BytesBase64:
		return base64.StdEncoding.EncodeToString(b)
	default:
		if utf8.Valid(b) {
			return string(b)
		}
		return "hex:" + hex.EncodeToString(b)
	}
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode string: %w", err)
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
