package sequence

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-drums/dsp/drum"
	"github.com/cwbudde/algo-drums/dsp/drum/midimap"
)

// Cell velocities.
const (
	HitVelocity  = 1.0
	SoftVelocity = 0.6
)

var (
	// ErrEmptyPattern is returned when a pattern has no rows.
	ErrEmptyPattern = errors.New("sequence: pattern has no rows")

	// ErrBadRow is returned for malformed pattern rows.
	ErrBadRow = errors.New("sequence: bad pattern row")
)

// Pattern is a loop of steps, each holding a velocity per slot.
// A velocity of zero is a rest.
type Pattern struct {
	steps int
	cells [drum.NumSlots][]float64
}

// NewPattern returns an empty pattern of n steps.
func NewPattern(n int) (*Pattern, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sequence: step count must be positive: %d", n)
	}
	p := &Pattern{steps: n}
	for i := range p.cells {
		p.cells[i] = make([]float64, n)
	}
	return p, nil
}

// Steps returns the loop length in steps.
func (p *Pattern) Steps() int { return p.steps }

// Set stores velocity at (slot, step). Out-of-range positions are ignored.
func (p *Pattern) Set(slot drum.Kind, step int, velocity float64) {
	if !slot.Valid() || step < 0 || step >= p.steps {
		return
	}
	p.cells[slot][step] = velocity
}

// At returns the velocity at (slot, step), or 0 when out of range.
func (p *Pattern) At(slot drum.Kind, step int) float64 {
	if !slot.Valid() || step < 0 || step >= p.steps {
		return 0
	}
	return p.cells[slot][step]
}

// Hits returns the number of non-rest cells.
func (p *Pattern) Hits() int {
	n := 0
	for _, row := range p.cells {
		for _, v := range row {
			if v > 0 {
				n++
			}
		}
	}
	return n
}

// String formats p in the text form accepted by ParsePattern.
func (p *Pattern) String() string {
	var b strings.Builder
	for _, k := range drum.Kinds {
		fmt.Fprintf(&b, "%-10s ", k)
		for _, v := range p.cells[k] {
			switch {
			case v >= HitVelocity:
				b.WriteByte('x')
			case v > 0:
				b.WriteByte('o')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ParsePattern reads a pattern in the text form described in the package
// documentation. Every row must have the same number of steps; slots
// without a row stay silent. A later row for the same slot is merged into
// the earlier one, so the three tom notes may share the tom slot.
func ParsePattern(r io.Reader) (*Pattern, error) {
	type row struct {
		slot  drum.Kind
		cells []float64
	}
	var rows []row
	steps := 0

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		label, body, ok := strings.Cut(text, " ")
		if !ok {
			label, body, ok = strings.Cut(text, "\t")
		}
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing steps", ErrBadRow, line)
		}

		slot, err := parseLabel(label)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadRow, line, err)
		}
		cells, err := parseCells(body)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadRow, line, err)
		}
		if steps == 0 {
			steps = len(cells)
		} else if len(cells) != steps {
			return nil, fmt.Errorf("%w: line %d: %d steps, want %d", ErrBadRow, line, len(cells), steps)
		}
		rows = append(rows, row{slot: slot, cells: cells})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("sequence: read pattern: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyPattern
	}

	p, err := NewPattern(steps)
	if err != nil {
		return nil, err
	}
	for _, rw := range rows {
		for i, v := range rw.cells {
			if v > p.cells[rw.slot][i] {
				p.cells[rw.slot][i] = v
			}
		}
	}
	return p, nil
}

// ParsePatternString is ParsePattern on a string.
func ParsePatternString(s string) (*Pattern, error) {
	return ParsePattern(strings.NewReader(s))
}

func parseLabel(label string) (drum.Kind, error) {
	if n, err := strconv.ParseUint(label, 10, 8); err == nil {
		k, ok := midimap.Slot(uint8(n))
		if !ok {
			return 0, fmt.Errorf("unmapped MIDI note %d", n)
		}
		return k, nil
	}
	return drum.ParseKind(label)
}

func parseCells(body string) ([]float64, error) {
	cells := make([]float64, 0, len(body))
	for _, c := range body {
		switch c {
		case 'x', 'X':
			cells = append(cells, HitVelocity)
		case 'o':
			cells = append(cells, SoftVelocity)
		case '.', '-':
			cells = append(cells, 0)
		case '|', ' ', '\t':
		default:
			return nil, fmt.Errorf("invalid step %q", c)
		}
	}
	if len(cells) == 0 {
		return nil, errors.New("no steps")
	}
	return cells, nil
}
