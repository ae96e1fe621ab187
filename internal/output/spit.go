// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/deploygen/deploygen/internal/attrs"
	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/filters"
	"github.com/deploygen/deploygen/internal/tokenizer"
)

// Row is the listing form of a token. Root and Leaf are the first and last
// segments of the name and Depth is its segment count.
type Row struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Root  string `json:"root"`
	Leaf  string `json:"leaf"`
	Depth int    `json:"depth"`
}

// Rows converts tokens into the JSON array SliceDiceSpit consumes.
func Rows(tokens []tokenizer.Token) (bytes.Buffer, error) {
	rows := make([]Row, 0, len(tokens))
	for _, tok := range tokens {
		segments := strings.Split(tok.Name, ".")
		rows = append(rows, Row{
			Name:  tok.Name,
			Value: tok.Value,
			Root:  segments[0],
			Leaf:  segments[len(segments)-1],
			Depth: len(segments),
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rows); err != nil {
		return buf, fmt.Errorf("encoding token rows: %w", err)
	}
	return buf, nil
}

// DefaultAttrs lists name and value and keeps the remaining row keys
// available for filtering and sorting.
func DefaultAttrs() attrs.AttrList {
	return attrs.AttrList{
		{Key: "name", OutputKey: "name", Include: true},
		{Key: "value", OutputKey: "value", Include: true},
		{Key: "root", OutputKey: "root"},
		{Key: "leaf", OutputKey: "leaf"},
		{Key: "depth", OutputKey: "depth"},
	}
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		// Depth is the only number in a row, so no fraction is shown.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// SliceDiceSpit filters, transforms, sorts and renders token rows as the
// command's --output asks. postProcess, when set, runs on the rows before a
// text table is rendered. A nil w writes to stdout.
func SliceDiceSpit(raw bytes.Buffer,
	attrs attrs.AttrList,
	cmd *cli.Command,
	w io.Writer,
	postProcess func([]map[string]interface{}) error) error {

	if w == nil {
		w = os.Stdout
	}

	output := cmd.String("output")
	if output == "raw" {
		_, err := w.Write(raw.Bytes())
		return err
	}

	rows := filters.FilterDataset(gjson.Parse(raw.String()), attrs, cmd.String("filter"))
	for _, row := range rows {
		for _, attr := range attrs {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}
	SortDataset(rows, cmd.String("sort"))

	switch output {
	case "json":
		out, err := json.Marshal(included(rows, attrs))
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		out, err := yaml.Marshal(included(rows, attrs))
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "", "text":
		if postProcess != nil {
			if err := postProcess(rows); err != nil {
				log.Errorf("post process: %v", err)
			}
		}
		TableWriter(rows, attrs, cmd, w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json, yaml or raw)", output)
	}
}

// included drops the attrs that only serve filtering and sorting.
func included(rows []map[string]interface{}, attrs attrs.AttrList) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		kept := make(map[string]interface{}, len(row))
		for _, attr := range attrs {
			if attr.Include {
				kept[attr.OutputKey] = row[attr.OutputKey]
			}
		}
		out = append(out, kept)
	}
	return out
}

// emptyCell marks a column without a value. Tokens whose value is empty are
// the ones a release pipeline has to fill.
const emptyCell = "-"

type tableStyles struct {
	header, even, odd, empty lipgloss.Style
}

func newTableStyles(colored bool) tableStyles {
	cell := lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
	st := tableStyles{
		header: lipgloss.NewStyle().Align(lipgloss.Left).Bold(true),
		even:   cell,
		odd:    cell,
		empty:  cell,
	}
	if colored {
		c := getColors("colors")
		st.header = st.header.Foreground(c.header)
		st.even = st.even.Foreground(c.even)
		st.odd = st.odd.Foreground(c.odd)
		st.empty = st.empty.Foreground(c.empty)
	}
	return st
}

// TableWriter renders rows as a borderless table between the optional
// header and footer of the command's metadata. --titles adds column titles
// and --color colors rows alternately with empty values highlighted. A nil w
// writes to stdout.
func TableWriter(
	resultSet []map[string]interface{},
	attrs attrs.AttrList,
	cmd *cli.Command,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}
	if len(resultSet) == 0 {
		return
	}

	var titles []string
	for _, attr := range attrs {
		if attr.Include {
			titles = append(titles, attr.OutputKey)
		}
	}

	cells := make([][]string, 0, len(resultSet))
	for _, result := range resultSet {
		row := make([]string, 0, len(titles))
		for _, title := range titles {
			row = append(row, InterfaceToString(result[title], emptyCell))
		}
		cells = append(cells, row)
	}

	st := newTableStyles(cmd.Bool("color"))
	pad := cmd.Int("padding")
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := st.odd
			switch {
			case row == table.HeaderRow:
				style = st.header
			case isEmptyCell(cells, row, col):
				style = st.empty
			case row%2 == 0:
				style = st.even
			}
			if col > 0 {
				style = style.PaddingLeft(pad)
			}
			return style
		}).
		Headers().
		Rows(cells...)

	if cmd.Bool("titles") {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(titles...).BorderHeader(false)
	}

	if header, ok := cmd.Metadata["header"].(string); ok {
		fmt.Fprintln(w, st.header.Render(header))
	}
	fmt.Fprintln(w, t)
	if footer, ok := cmd.Metadata["footer"].(string); ok {
		fmt.Fprintln(w, st.header.Render(footer))
	}
}

func isEmptyCell(cells [][]string, row, col int) bool {
	return row >= 0 && row < len(cells) && col < len(cells[row]) && cells[row][col] == emptyCell
}

type palette struct {
	header, even, odd, empty color.Color
}

// getColors reads colors from the config under key, falling back to
// defaults chosen for the terminal background.
func getColors(key string) palette {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolve := func(name, light, dark string) color.Color {
		if c, err := config.GetString(key + "." + name); err == nil {
			return lipgloss.Color(c)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	return palette{
		header: resolve("title", "#b08800", "#f6be00"),
		even:   resolve("even", "#333333", "#ffffff"),
		odd:    resolve("odd", "#0088a0", "#00c8f0"),
		empty:  resolve("empty", "#c0392b", "#ff6b5b"),
	}
}
