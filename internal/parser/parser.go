package parser

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mcncl/bdecode/internal/errors"
	"github.com/mcncl/bdecode/internal/models"
)

// Parser loads bencoded input and decodes it into a Document.
type Parser struct {
	decoder *Decoder
	logger  *log.Logger
}

// NewParser creates a Parser. A nil logger discards debug output.
func NewParser(opts Options, logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Parser{
		decoder: NewDecoder(opts),
		logger:  logger,
	}
}

// ParseBytes decodes an in-memory buffer
func (p *Parser) ParseBytes(data []byte) (models.Document, error) {
	if len(data) == 0 {
		return models.Document{}, errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}

	p.logger.Printf("decoding %d bytes, first byte %q", len(data), data[0])
	root, consumed, err := p.decoder.Decode(data)
	if err != nil {
		p.logger.Printf("decode failed after %d bytes: %v", consumed, err)
		return models.Document{}, errors.NewParsingError("failed to decode bencode", err)
	}

	doc := models.Document{
		Root:     root,
		Consumed: consumed,
		Size:     len(data),
	}
	if doc.Trailing() > 0 {
		p.logger.Printf("ignoring %d trailing bytes after offset %d", doc.Trailing(), consumed)
	}
	p.logger.Printf("decoded %s, consumed %d of %d bytes", root.Kind(), consumed, len(data))
	return doc, nil
}

// Parse reads all of reader and decodes it
func (p *Parser) Parse(reader io.Reader) (models.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read input", err)
	}
	return p.ParseBytes(data)
}

// ParseString decodes a bencoded string
func (p *Parser) ParseString(s string) (models.Document, error) {
	if s == "" {
		return models.Document{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return p.ParseBytes([]byte(s))
}

// ParseFile decodes the contents of a file
func (p *Parser) ParseFile(filePath string) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	p.logger.Printf("read %d bytes from %s", len(data), filePath)
	return p.ParseBytes(data)
}

// ParseString decodes a bencoded string with default options
func ParseString(s string) (models.Document, error) {
	return NewParser(Options{}, nil).ParseString(s)
}

// ParseFile decodes a file with default options
func ParseFile(filePath string) (models.Document, error) {
	return NewParser(Options{}, nil).ParseFile(filePath)
}
