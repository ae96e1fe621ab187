// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"

	"github.com/deploygen/deploygen/internal/tokenizer"
)

// Anchor is the template line the environment block is spliced after.
const Anchor = "env:"

// ErrAnchorNotFound is returned when a template has no env: line.
var ErrAnchorNotFound = errors.New("template has no " + Anchor + " line")

// SynthesisError reports a synthesized manifest that does not parse.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("bad deploy yaml file indentation: %v", e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// Synthesize splices the tokens into template as a list of name/value
// records. Every line of the list is indented by indent levels of two
// spaces. Replacements are applied to the template first, longest key
// first. The result must parse as a YAML stream or nothing is returned.
func Synthesize(template string, tokens []tokenizer.Token, indent int, replacements map[string]string) (string, error) {
	block, err := EnvBlock(tokens, indent)
	if err != nil {
		return "", err
	}

	text := replace(template, replacements)

	lines := strings.SplitAfter(text, "\n")
	at := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == Anchor {
			at = i
			break
		}
	}
	if at < 0 {
		return "", ErrAnchorNotFound
	}

	var out strings.Builder
	for i, line := range lines {
		out.WriteString(line)
		if i != at {
			continue
		}
		if !strings.HasSuffix(line, "\n") {
			out.WriteByte('\n')
		}
		out.WriteString(block)
	}

	result := out.String()
	if err := validate(result); err != nil {
		return "", &SynthesisError{Err: err}
	}
	log.Debugf("synthesized manifest: %d env entries at indent %d", len(tokens), indent)
	return result, nil
}

// EnvBlock serializes tokens as a YAML sequence of flow records, one per
// line, each line prefixed with 2*indent spaces and terminated by a newline.
// Values are always double quoted. An empty list renders nothing, leaving
// the anchor's value null.
func EnvBlock(tokens []tokenizer.Token, indent int) (string, error) {
	if len(tokens) == 0 {
		return "", nil
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, tok := range tokens {
		seq.Content = append(seq.Content, record(tok))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return "", fmt.Errorf("encoding env block: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding env block: %w", err)
	}

	pad := strings.Repeat(" ", 2*max(indent, 0))
	var out strings.Builder
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		out.WriteString(pad)
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.String(), nil
}

func record(tok tokenizer.Token) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.MappingNode,
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "name"},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: tok.Name},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "value"},
			{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: tok.Value},
		},
	}
}

func replace(template string, replacements map[string]string) string {
	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, replacements[k])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func validate(text string) error {
	dec := yaml.NewDecoder(strings.NewReader(text))
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
