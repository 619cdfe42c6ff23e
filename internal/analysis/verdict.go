package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SyntaxVerdict is the syntax pipeline's outcome.
type SyntaxVerdict int

const (
	SyntaxUnknown SyntaxVerdict = iota
	SyntaxClean
	SyntaxError
)

func (v SyntaxVerdict) String() string {
	switch v {
	case SyntaxClean:
		return "clean"
	case SyntaxError:
		return "has-error"
	default:
		return "unknown"
	}
}

func (v SyntaxVerdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// Structure is one structural tag.
type Structure string

const (
	StructureLoop          Structure = "loop"
	StructureConditional   Structure = "conditional"
	StructureListOperation Structure = "list-operation"
)

// StructureOrder is the position of each tag in a structure label.
var StructureOrder = []Structure{StructureLoop, StructureConditional, StructureListOperation}

// StructureVerdict is the set of detected tags, in StructureOrder.
// An empty verdict means no structures were detected.
type StructureVerdict []Structure

// None reports whether no structure was detected.
func (v StructureVerdict) None() bool {
	return len(v) == 0
}

func (v StructureVerdict) Has(s Structure) bool {
	for _, t := range v {
		if t == s {
			return true
		}
	}
	return false
}

func (v StructureVerdict) String() string {
	if v.None() {
		return "none"
	}
	parts := make([]string, len(v))
	for i, s := range v {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// syntaxFromLabel maps a syntax label; anything but [0] or [1] is malformed.
func syntaxFromLabel(label []int) (SyntaxVerdict, error) {
	if len(label) != 1 {
		return SyntaxUnknown, fmt.Errorf("syntax label %v has %d values, want 1: %w", label, len(label), ErrMalformedLabel)
	}
	switch label[0] {
	case 0:
		return SyntaxClean, nil
	case 1:
		return SyntaxError, nil
	default:
		return SyntaxUnknown, fmt.Errorf("syntax label %v is not binary: %w", label, ErrMalformedLabel)
	}
}

// structureFromLabel maps set positions of a 3-wide binary label to tags.
func structureFromLabel(label []int) (StructureVerdict, error) {
	if len(label) != len(StructureOrder) {
		return nil, fmt.Errorf("structure label %v has %d values, want %d: %w", label, len(label), len(StructureOrder), ErrMalformedLabel)
	}
	verdict := StructureVerdict{}
	for i, bit := range label {
		switch bit {
		case 0:
		case 1:
			verdict = append(verdict, StructureOrder[i])
		default:
			return nil, fmt.Errorf("structure label %v is not binary: %w", label, ErrMalformedLabel)
		}
	}
	return verdict, nil
}
