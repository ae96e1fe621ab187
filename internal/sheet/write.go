// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sheet

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/deploygen/deploygen/internal/config"
)

// MenuFontSize is the font size of menu cells.
const MenuFontSize = 12

// cellStyle is the resolved look of one cell.
type cellStyle struct {
	menu   bool
	tone   Tone
	border bool
}

// Write renders the sheets as an xlsx workbook. Every stored cell uses the
// configured font and is centered; column widths fit their longest value up
// to the configured maximum.
func Write(w io.Writer, sheets []*Sheet, style config.SheetStyle) (err error) {
	if len(sheets) == 0 {
		return errors.New("workbook has no sheets")
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	r := &renderer{f: f, style: style, ids: map[cellStyle]int{}}
	for i, s := range sheets {
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), s.Name)
		} else {
			_, err = f.NewSheet(s.Name)
		}
		if err != nil {
			return fmt.Errorf("adding sheet %s: %w", s.Name, err)
		}
		if err := r.sheet(s); err != nil {
			return fmt.Errorf("rendering sheet %s: %w", s.Name, err)
		}
	}
	f.SetActiveSheet(0)

	return f.Write(w)
}

type renderer struct {
	f     *excelize.File
	style config.SheetStyle
	ids   map[cellStyle]int
}

func (r *renderer) sheet(s *Sheet) error {
	rows, cols := s.Dimension()
	if rows == 0 {
		return nil
	}

	looks := make([][]cellStyle, rows)
	for i := range looks {
		looks[i] = make([]cellStyle, cols)
	}
	// apply visits each in-grid cell of the ranges.
	apply := func(ranges []string, set func(*cellStyle)) error {
		for _, ref := range ranges {
			c1, r1, c2, r2, err := bounds(ref)
			if err != nil {
				return err
			}
			for row := r1; row <= min(r2, rows); row++ {
				for col := c1; col <= min(c2, cols); col++ {
					set(&looks[row-1][col-1])
				}
			}
		}
		return nil
	}
	for _, fill := range s.Fills {
		if err := apply([]string{fill.Range}, func(c *cellStyle) { c.tone = fill.Tone }); err != nil {
			return err
		}
	}
	if err := apply(s.Menu, func(c *cellStyle) { c.menu = true }); err != nil {
		return err
	}
	if err := apply(s.Borders, func(c *cellStyle) { c.border = true }); err != nil {
		return err
	}

	widths := make([]int, cols)
	for row := 1; row <= rows; row++ {
		for col := 1; col <= cols; col++ {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			value := ""
			if col <= len(s.Rows[row-1]) {
				value = s.Rows[row-1][col-1]
			}
			if value != "" {
				if err := r.f.SetCellValue(s.Name, cell, value); err != nil {
					return err
				}
				widths[col-1] = max(widths[col-1], utf8.RuneCountInString(value))
			}
			id, err := r.styleID(looks[row-1][col-1])
			if err != nil {
				return err
			}
			if err := r.f.SetCellStyle(s.Name, cell, cell, id); err != nil {
				return err
			}
		}
	}

	for i, width := range widths {
		if width == 0 {
			continue
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := r.f.SetColWidth(s.Name, name, name, float64(min(width, r.style.ColumnWidth))); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) styleID(look cellStyle) (int, error) {
	if id, ok := r.ids[look]; ok {
		return id, nil
	}

	st := &excelize.Style{
		Font:      &excelize.Font{Family: r.style.Font},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}
	fill := r.color(look.tone)
	if look.menu {
		st.Font = &excelize.Font{Family: r.style.Font, Bold: true, Color: "FFFFFF", Size: MenuFontSize}
		fill = r.style.Menu
	}
	if fill != "" {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}}
	}
	if look.border {
		for _, side := range []string{"left", "top", "right", "bottom"} {
			st.Border = append(st.Border, excelize.Border{Type: side, Color: "000000", Style: 1})
		}
	}

	id, err := r.f.NewStyle(st)
	if err != nil {
		return 0, err
	}
	r.ids[look] = id
	return id, nil
}

func (r *renderer) color(t Tone) string {
	switch t {
	case Green:
		return r.style.Green
	case Yellow:
		return r.style.Yellow
	case Orange:
		return r.style.Orange
	case Red:
		return r.style.Red
	}
	return ""
}
