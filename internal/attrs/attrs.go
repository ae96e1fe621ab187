// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/deploygen/deploygen/internal/log"
)

// Attr represents each of the token row keys to be included in the output.
type Attr struct {
	// The JSON key to extract from the token row.
	Key string `yaml:"key" json:"Key"`
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool `yaml:"include" json:"Include"`
	// The key to use in the output. This is also used as the column title when
	// output=text.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

var lengthRegex = regexp.MustCompile(`-?\d+`)

// maskKeep is how many leading runes a masked value keeps.
const maskKeep = 4

// Transform applies the attribute's transform spec to a value. Only string
// values are transformed. Flags in the spec:
//
//	l, u  lower or upper case; the last one given wins
//	m     mask all but the first few runes, for secrets in token values
//	q     double-quote the result the way manifests carry it
//	N     truncate to N runes; -N keeps both ends around ".."
func (a *Attr) Transform(value interface{}) interface{} {
	result, ok := value.(string)
	if !ok {
		log.Tracef("non-string value: value=%v", value)
		return value
	}
	spec := a.TransformSpec
	if spec == "" {
		return result
	}

	// A global spec is prepended to the attr's own, so the rightmost case
	// flag is the most specific one.
	switch lower, upper := strings.LastIndexAny(spec, "lL"), strings.LastIndexAny(spec, "uU"); {
	case lower > upper:
		result = strings.ToLower(result)
	case upper > lower:
		result = strings.ToUpper(result)
	}

	if strings.ContainsAny(spec, "mM") {
		result = mask(result)
		log.Tracef("masked: result=%s", result)
	}

	if match := lengthRegex.FindAllString(spec, -1); len(match) != 0 {
		n, _ := strconv.Atoi(match[len(match)-1])
		result = shorten(result, n)
		log.Tracef("length applied: n=%d, result=%s", n, result)
	}

	if strings.ContainsAny(spec, "qQ") {
		result = strconv.Quote(result)
	}

	return result
}

func mask(s string) string {
	r := []rune(s)
	if len(r) <= maskKeep {
		return strings.Repeat("*", len(r))
	}
	return string(r[:maskKeep]) + strings.Repeat("*", len(r)-maskKeep)
}

// shorten truncates s to n runes, or for negative n elides its middle.
func shorten(s string, n int) string {
	r := []rune(s)
	abs := int(math.Abs(float64(n)))
	if len(r) <= abs {
		return s
	}
	if n >= 0 {
		return string(r[:n])
	}
	keep := max(abs/2-1, 0)
	return string(r[:keep]) + ".." + string(r[len(r)-keep:])
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// Set parses each spec from --attrs and adds it to the AttrList.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		log.Debugf("early return: value=%s", value)
		return nil
	}

	const (
		jsonIdx = iota
		outputIdx
		transformIdx
	)

	// Each spec is key[:output[:transform]]; output defaults to key.
specloop:
	for _, spec := range strings.Split(value, ",") {
		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")
		if len(fields) > transformIdx+1 {
			return fmt.Errorf("invalid attr spec %q (want key[:output[:transform]])", spec)
		}

		// A leading ! keeps the column for filtering and sorting only.
		attr.Key = strings.TrimPrefix(strings.TrimSpace(fields[jsonIdx]), ".")
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attr spec %q: empty key", spec)
		}

		if attr.Key == "*" {
			attr.Include = false
		}
		log.Tracef("key parsed: key=%s, include=%v", attr.Key, attr.Include)

		attr.OutputKey = attr.Key
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}
		log.Tracef("output set: outputKey=%s", attr.OutputKey)

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}
		log.Tracef("transform set: spec=%s", attr.TransformSpec)

		// Respecifying a default column updates it in place.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				log.Tracef("existing updated: i=%d", i)
				continue specloop
			}
		}

		*a = append(*a, attr)
		log.Tracef("attr appended: len=%d", len(*a))
	}

	return nil
}

// SetGlobalTransformSpec inserts a global transform spec at the front of all
// attrs in the list.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""

	for _, attr := range *a {
		if attr.Key == "*" {
			spec = attr.TransformSpec
			break
		}
	}
	log.Debugf("global spec: spec=%s", spec)

	if spec == "" {
		return nil
	}

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}

	return nil
}

// String returns a string representation of the AttrList. This matches the
// format of the --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }
