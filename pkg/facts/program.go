/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: program.go
Description: Constraint program assembly for the Draco guide pipeline. A Program
is the ordered concatenation of a fact set with caller-supplied rule and
constraint strings, checked for syntactic well-formedness at construction and
fingerprinted for optional caching.
*/

package facts

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRule is returned when a caller-supplied rule fails the
// syntactic well-formedness checks
var ErrMalformedRule = errors.New("malformed rule")

// Program is an ordered sequence of fact and rule lines handed to the
// solver. Beyond the construction-time syntax checks, its contents are
// opaque to this package.
type Program struct {
	lines []string
}

// NewProgram creates a program seeded with the rendered facts of fs.
// A nil fact set yields an empty program.
func NewProgram(fs *FactSet) *Program {
	p := &Program{}
	if fs != nil {
		p.lines = append(p.lines, fs.Render()...)
	}
	return p
}

// AddRule appends one caller-supplied rule or constraint string after
// validating its surface syntax: non-empty, terminated with a period,
// balanced parentheses and quotes.
func (p *Program) AddRule(rule string) error {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return fmt.Errorf("%w: empty rule", ErrMalformedRule)
	}
	if !strings.HasSuffix(trimmed, ".") {
		return fmt.Errorf("%w: rule %q does not end with a period", ErrMalformedRule, trimmed)
	}
	if err := checkBalance(trimmed); err != nil {
		return fmt.Errorf("%w: rule %q: %v", ErrMalformedRule, trimmed, err)
	}
	p.lines = append(p.lines, trimmed)
	return nil
}

// AddRules appends rules in order, stopping at the first malformed one
func (p *Program) AddRules(rules []string) error {
	for _, rule := range rules {
		if err := p.AddRule(rule); err != nil {
			return err
		}
	}
	return nil
}

// AddBlock appends a trusted multi-line ASP block (e.g. the embedded
// knowledge base) without per-line validation. Comment and blank lines
// are preserved so solver error positions stay meaningful.
func (p *Program) AddBlock(block string) {
	for _, line := range strings.Split(block, "\n") {
		p.lines = append(p.lines, line)
	}
}

// Lines returns a copy of the ordered program lines
func (p *Program) Lines() []string {
	out := make([]string, len(p.lines))
	copy(out, p.lines)
	return out
}

// Len returns the number of program lines
func (p *Program) Len() int {
	return len(p.lines)
}

// Fingerprint returns a stable content hash of the program, usable as a
// cache key for memoizing solve results.
func (p *Program) Fingerprint() string {
	h := sha256.New()
	for _, line := range p.lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// checkBalance verifies parentheses and double-quote balance outside of
// quoted literals
func checkBalance(s string) error {
	depth := 0
	inQuote := false
	escaped := false
	for _, r := range s {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inQuote {
				escaped = true
			}
		case '"':
			inQuote = !inQuote
		case '(':
			if !inQuote {
				depth++
			}
		case ')':
			if !inQuote {
				depth--
				if depth < 0 {
					return errors.New("unbalanced parentheses")
				}
			}
		}
	}
	if depth != 0 {
		return errors.New("unbalanced parentheses")
	}
	if inQuote {
		return errors.New("unterminated string literal")
	}
	return nil
}
