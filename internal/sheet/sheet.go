// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Tone is a highlight color of the legend.
type Tone int

const (
	// NoTone leaves the cell unfilled.
	NoTone Tone = iota
	// Green marks new variables and values.
	Green
	// Yellow marks values to change.
	Yellow
	// Orange marks values the architecture team defines.
	Orange
	// Red marks variables to remove.
	Red
)

// Fill paints a cell range with a tone.
type Fill struct {
	Range string
	Tone  Tone
}

// Sheet is one worksheet: cell values plus the ranges that carry the menu
// style, fills and borders. Ranges are "A1" or "A1:D2" references.
type Sheet struct {
	Name    string
	Rows    [][]string
	Menu    []string
	Fills   []Fill
	Borders []string
}

// New returns an empty sheet.
func New(name string) *Sheet {
	return &Sheet{Name: name}
}

// Set stores value at a cell reference such as "B7".
func (s *Sheet) Set(ref, value string) *Sheet {
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		panic(fmt.Sprintf("sheet %s: %v", s.Name, err))
	}
	return s.put(row, col, value)
}

// SetRow stores values left to right starting at column A of row.
func (s *Sheet) SetRow(row int, values ...string) *Sheet {
	for i, v := range values {
		s.put(row, i+1, v)
	}
	return s
}

func (s *Sheet) put(row, col int, value string) *Sheet {
	for len(s.Rows) < row {
		s.Rows = append(s.Rows, nil)
	}
	r := s.Rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	s.Rows[row-1] = r
	return s
}

// Cell returns the value at a cell reference, "" when unset.
func (s *Sheet) Cell(ref string) string {
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil || row > len(s.Rows) || col > len(s.Rows[row-1]) {
		return ""
	}
	return s.Rows[row-1][col-1]
}

// Dimension returns the number of rows and the widest row's column count.
func (s *Sheet) Dimension() (rows, cols int) {
	for _, r := range s.Rows {
		cols = max(cols, len(r))
	}
	return len(s.Rows), cols
}

// DataRange is the "A1:<last>" reference covering every stored cell.
func (s *Sheet) DataRange() string {
	rows, cols := s.Dimension()
	if rows == 0 || cols == 0 {
		return "A1:A1"
	}
	last, _ := excelize.CoordinatesToCellName(cols, rows)
	return "A1:" + last
}

// Paint adds fills of one tone.
func (s *Sheet) Paint(tone Tone, ranges ...string) *Sheet {
	for _, r := range ranges {
		s.Fills = append(s.Fills, Fill{Range: r, Tone: tone})
	}
	return s
}

// Header marks ranges with the menu style.
func (s *Sheet) Header(ranges ...string) *Sheet {
	s.Menu = append(s.Menu, ranges...)
	return s
}

// Border draws thin borders around every cell of the ranges.
func (s *Sheet) Border(ranges ...string) *Sheet {
	s.Borders = append(s.Borders, ranges...)
	return s
}

// bounds parses "A1" or "A1:D2" into inclusive 1-based coordinates.
func bounds(ref string) (c1, r1, c2, r2 int, err error) {
	from, to, found := strings.Cut(ref, ":")
	if !found {
		to = from
	}
	if c1, r1, err = excelize.CellNameToCoordinates(from); err != nil {
		return
	}
	if c2, r2, err = excelize.CellNameToCoordinates(to); err != nil {
		return
	}
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return
}
