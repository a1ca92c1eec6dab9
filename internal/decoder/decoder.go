// Package decoder turns raw delimited price exports into rows of cells.
//
// Supplier exports arrive with unpredictable 16-bit encodings and either
// tab or semicolon delimiters. Instead of guessing, a fixed chain of
// (encoding, delimiter) candidates is tried in priority order and the
// first one that tokenizes cleanly wins. Nothing semantic is validated.
package decoder

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Candidate is one (encoding, delimiter) pair in the fallback chain.
type Candidate struct {
	Name  string
	Enc   encoding.Encoding
	Delim rune
}

// DefaultChain mirrors the order the legacy exports were observed in:
// UTF-16 with tab first, then the explicit little-endian variant, then
// UTF-16 with semicolon.
func DefaultChain() []Candidate {
	bomUTF16 := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	leUTF16 := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	return []Candidate{
		{Name: "utf-16/tab", Enc: bomUTF16, Delim: '\t'},
		{Name: "utf-16le/tab", Enc: leUTF16, Delim: '\t'},
		{Name: "utf-16/semicolon", Enc: bomUTF16, Delim: ';'},
	}
}

// DecodeError reports that every candidate in the chain failed.
type DecodeError struct {
	Attempts []string // "name: error" per failed candidate
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoder: all %d candidates failed (%s)",
		len(e.Attempts), strings.Join(e.Attempts, "; "))
}

// Chain decodes delimited files by trying candidates in order.
type Chain struct {
	candidates []Candidate
}

// NewChain creates a decoder chain. An empty candidate list falls back to
// DefaultChain.
func NewChain(candidates ...Candidate) *Chain {
	if len(candidates) == 0 {
		candidates = DefaultChain()
	}
	return &Chain{candidates: candidates}
}

// Decode returns the rows of the first candidate that parses, or a
// *DecodeError if they all fail. A candidate "parses" when the encoding
// transform and CSV tokenization both succeed and at least one row splits
// into two or more cells; a delimiter that never fires means the wrong
// candidate, not a one-column file. Nothing semantic is validated.
func (c *Chain) Decode(raw []byte) ([][]string, error) {
	var attempts []string
	for _, cand := range c.candidates {
		rows, err := decodeOne(raw, cand)
		if err == nil {
			return rows, nil
		}
		attempts = append(attempts, cand.Name+": "+err.Error())
	}
	return nil, &DecodeError{Attempts: attempts}
}

func decodeOne(raw []byte, cand Candidate) ([][]string, error) {
	decoded, err := cand.Enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, eris.Wrap(err, "transform")
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.Comma = cand.Delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "tokenize")
	}
	if len(rows) == 0 {
		return nil, eris.New("no rows")
	}
	for _, row := range rows {
		if len(row) > 1 {
			return rows, nil
		}
	}
	return nil, eris.New("delimiter never matched")
}
