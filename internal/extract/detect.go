// Package extract implements the row-scanning heuristics that pull price
// records out of arbitrary spreadsheet layouts: a code detector, a row
// extractor, and walkers that apply them to whole files.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// CodeRule selects which SAP-code pattern the detector applies. Two
// variants exist in the wild for nominally the same code concept; the
// fixed ten-digit form is the canonical default, the prefix form stays
// selectable through the supplier profile.
type CodeRule int

const (
	// CodeRuleFixed10 matches exactly ten digits with a leading 3.
	CodeRuleFixed10 CodeRule = iota
	// CodeRulePrefix3 matches all-digit tokens with a leading 3 and more
	// than nine digits.
	CodeRulePrefix3
)

var (
	fixed10Re = regexp.MustCompile(`^3\d{9}$`)
	digitsRe  = regexp.MustCompile(`^\d+$`)
)

// ParseCodeRule maps a config string to a CodeRule.
func ParseCodeRule(s string) (CodeRule, error) {
	switch s {
	case "", "fixed10":
		return CodeRuleFixed10, nil
	case "prefix3":
		return CodeRulePrefix3, nil
	default:
		return 0, eris.Errorf("extract: unknown code pattern %q", s)
	}
}

// Match reports whether the trimmed cell value is a SAP code under this rule.
func (r CodeRule) Match(cell string) bool {
	s := strings.TrimSpace(cell)
	switch r {
	case CodeRulePrefix3:
		return len(s) > 9 && s[0] == '3' && digitsRe.MatchString(s)
	default:
		return fixed10Re.MatchString(s)
	}
}

// DetectCode returns the index of the first cell in the row matching the
// code rule, left to right. No backtracking: only the first match is used.
func DetectCode(row []string, rule CodeRule) (int, bool) {
	for i, cell := range row {
		if rule.Match(cell) {
			return i, true
		}
	}
	return 0, false
}

var priceRe = regexp.MustCompile(`^\d*\.?\d+$`)

// parsePrice parses a cell as a plausible price: comma accepted as the
// decimal separator, the value truncated to an integer, and only strictly
// positive results kept.
func parsePrice(cell string) (int, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(cell, ",", "."))
	if !priceRe.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	v := int(f)
	if v <= 0 {
		return 0, false
	}
	return v, true
}
