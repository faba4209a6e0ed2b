package models

import "fmt"

// ValidationError reports a single out-of-range or malformed field. It is
// raised before any network call is attempted.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

var validOperations = map[string]bool{
	OpAdd: true,
	OpSub: true,
	OpMul: true,
	OpDiv: true,
}

var validModes = map[string]bool{
	ModeEasyToHard: true,
	ModeBalanced:   true,
	ModeHardToEasy: true,
}

// ValidExportKind reports whether kind names one of the two export flavors.
func ValidExportKind(kind string) bool {
	return kind == ExportQuestions || kind == ExportAnswers
}

// ExportFilename returns the fixed download filename for an export kind.
func ExportFilename(kind string) string {
	return fmt.Sprintf("worksheet_%s.pdf", kind)
}

// Validate checks field ranges and the cross-field count invariants. The
// first violation wins; nil means the config may go on the wire.
func (c *GenerationConfig) Validate() *ValidationError {
	if c.Grade < 1 || c.Grade > 5 {
		return invalid("grade", "must be between 1 and 5, got %d", c.Grade)
	}
	if len(c.Operations) == 0 {
		return invalid("operations", "at least one operation is required")
	}
	for _, op := range c.Operations {
		if !validOperations[op] {
			return invalid("operations", "unknown operation %q", op)
		}
	}
	if c.Count < 5 || c.Count > 200 {
		return invalid("count", "must be between 5 and 200, got %d", c.Count)
	}
	if c.MinValue < 0 {
		return invalid("min_value", "must not be negative, got %d", c.MinValue)
	}
	if c.MaxValue < 1 {
		return invalid("max_value", "must be at least 1, got %d", c.MaxValue)
	}
	if c.WordCount < 0 {
		return invalid("word_count", "must not be negative, got %d", c.WordCount)
	}
	if c.MCQCount < 0 {
		return invalid("mcq_count", "must not be negative, got %d", c.MCQCount)
	}
	if c.WordCount > c.Count {
		return invalid("word_count", "cannot exceed count (%d > %d)", c.WordCount, c.Count)
	}
	if c.MCQCount > c.Count-c.WordCount {
		return invalid("mcq_count", "cannot exceed count minus word_count (%d > %d)", c.MCQCount, c.Count-c.WordCount)
	}
	if c.Language != LangVietnamese && c.Language != LangEnglish {
		return invalid("language", "must be %q or %q, got %q", LangVietnamese, LangEnglish, c.Language)
	}
	return nil
}

// Validate checks the assembly request against the pool it carries.
func (p *AssemblePayload) Validate() *ValidationError {
	if len(p.Problems) == 0 {
		return invalid("problems", "pool is empty")
	}
	if p.Count < 1 {
		return invalid("count", "must be at least 1, got %d", p.Count)
	}
	if p.MCQCount < 0 {
		return invalid("mcq_count", "must not be negative, got %d", p.MCQCount)
	}
	if p.WordCount < 0 {
		return invalid("word_count", "must not be negative, got %d", p.WordCount)
	}
	if !validModes[p.Mode] {
		return invalid("mode", "unknown ordering mode %q", p.Mode)
	}
	return nil
}
