// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/deploygen/deploygen/internal/attrs"
)

// EnvDelim names the environment variable overriding the filter delimiter.
const EnvDelim = "DEPLOYGEN_FILTER_DELIM"

// filterRegex splits key, operand and target. Operands are = ^ ~ < > @ /
// with an optional leading '!'; a bare key has neither operand nor target.
var filterRegex = regexp.MustCompile(`^([^!?=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is one parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a --filter spec. Expressions are separated by "," or by
// the value of DEPLOYGEN_FILTER_DELIM, since connection strings carry commas.
// Malformed expressions are logged and skipped.
func BuildFilters(spec string) []Filter {
	if spec == "" {
		return nil
	}

	delim := ","
	if d, ok := os.LookupEnv(EnvDelim); ok {
		delim = d
	}

	var filters []Filter
	for _, expr := range strings.Split(spec, delim) {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}

		f, err := parseFilter(expr)
		if err != nil {
			log.Errorf("invalid filter: %v", err)
			continue
		}
		filters = append(filters, f)
	}

	return filters
}

func parseFilter(expr string) (Filter, error) {
	parts := filterRegex.FindStringSubmatch(expr)
	if parts == nil {
		return Filter{}, fmt.Errorf("%s", expr)
	}

	key, operand, target := strings.TrimSpace(parts[1]), parts[2], parts[3]
	if key == "" {
		return Filter{}, fmt.Errorf("empty key in %s", expr)
	}

	operand, negate := strings.CutPrefix(operand, "!")
	return Filter{Key: key, Negate: negate, Operand: operand, Value: target}, nil
}

// FilterDataset returns the rows of candidates, a JSON array of token rows,
// that pass every filter in spec. Returned rows are keyed by output key;
// transforms are left to the writers.
func FilterDataset(candidates gjson.Result, attrs attrs.AttrList, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)

	var rows []map[string]interface{}
	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, attrs, filters) {
			continue
		}

		row := make(map[string]interface{}, len(attrs))
		for _, attr := range attrs {
			row[attr.OutputKey] = candidate.Get(gjson.Escape(attr.Key)).Value()
		}
		rows = append(rows, row)
	}

	return rows
}

// applyFilters reports whether candidate satisfies every filter. Filter keys
// name output keys and are resolved to row keys through attrs.
func applyFilters(candidate gjson.Result, attrs attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		key := rowKey(attrs, filter.Key)
		if key == "" {
			// Unknown keys are reported and the remaining filters still apply.
			msg := fmt.Sprintf("filter key not found: %s", filter.Key)
			log.Errorf(msg)
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
			continue
		}

		if !matches(candidate.Get(gjson.Escape(key)).Value(), filter) {
			return false
		}
	}

	return true
}

func rowKey(attrs attrs.AttrList, outputKey string) string {
	for _, attr := range attrs {
		if attr.OutputKey == outputKey {
			return attr.Key
		}
	}
	return ""
}

// matches evaluates one filter against a decoded row value. Absent values
// never match.
func matches(value interface{}, filter Filter) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return checkStringOperand(v, filter)
	case bool:
		return checkStringOperand(strconv.FormatBool(v), filter)
	}
	if num, ok := toFloat64(value); ok {
		return checkNumericOperand(num, filter)
	}
	if filter.Operand == "@" {
		return checkContainsOperand(value, filter)
	}
	return true
}

// checkContainsOperand evaluates the membership operand '@' against list and
// object values.
func checkContainsOperand(value interface{}, filter Filter) bool {
	var found bool
	switch val := value.(type) {
	case []any:
		for _, item := range val {
			if item == filter.Value {
				found = true
				break
			}
		}
	case map[string]any:
		_, found = val[filter.Value]
	default:
		log.Errorf("unsupported type for contains filtering: %T", value)
		return false
	}
	return found != filter.Negate
}

// checkNumericOperand compares numerically. Only =, > and < apply; != is
// Negate with "=".
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Errorf("invalid numeric value: %s", filter.Value)
		return false
	}

	var result bool
	switch filter.Operand {
	case "=":
		result = value == tgt
	case ">":
		result = value > tgt
	case "<":
		result = value < tgt
	default:
		log.Errorf("unsupported numeric operand: %s", filter.Operand)
		return false
	}
	return result != filter.Negate
}

// stringOperands maps each operand to its comparison. The bare key operand
// keeps non-empty values.
var stringOperands = map[string]func(value, target string) (bool, error){
	"":  func(v, _ string) (bool, error) { return v != "", nil },
	"=": func(v, t string) (bool, error) { return v == t, nil },
	"~": func(v, t string) (bool, error) { return strings.EqualFold(v, t), nil },
	"^": func(v, t string) (bool, error) { return strings.HasPrefix(v, t), nil },
	">": func(v, t string) (bool, error) { return v > t, nil },
	"<": func(v, t string) (bool, error) { return v < t, nil },
	"@": func(v, t string) (bool, error) { return strings.Contains(v, t), nil },
	"/": func(v, t string) (bool, error) { return regexp.MatchString(t, v) },
}

func checkStringOperand(value string, filter Filter) bool {
	op, ok := stringOperands[filter.Operand]
	if !ok {
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
	result, err := op(value, filter.Value)
	if err != nil {
		log.Errorf("invalid regex: %s", filter.Value)
		return false
	}
	return result != filter.Negate
}

// toFloat64 widens Go numeric types.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
