// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChopPrefix(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "empty",
		},
		{
			name: "single value keeps two segments",
			in:   []string{"events.FlightDelayed.parameters.Topic"},
			want: []string{"..parameters.Topic"},
		},
		{
			name: "two shared segments",
			in: []string{
				"events.FlightDelayed.parameters.Topic",
				"events.FlightDelayed.parameters.Subscription",
				"events.FlightDelayed.connectionString.primary",
			},
			want: []string{
				"..parameters.Topic",
				"..parameters.Subscription",
				"..connectionString.primary",
			},
		},
		{
			name: "differ on third segment",
			in: []string{
				"events.FlightDelayed.parameters.Topic",
				"events.CrewAssigned.parameters.Topic",
			},
			want: []string{
				"events.FlightDelayed.parameters.Topic",
				"events.CrewAssigned.parameters.Topic",
			},
		},
		{
			name: "one shared segment",
			in:   []string{"log.console.minimumLevel.x", "log.file.path.y"},
			want: []string{"log.console.minimumLevel.x", "log.file.path.y"},
		},
		{
			name: "nothing shared",
			in:   []string{"a.b.c.d", "x.y.z.w"},
			want: []string{"a.b.c.d", "x.y.z.w"},
		},
		{
			name: "too short to chop",
			in:   []string{"k8s.schedule", "k8s.schedule"},
			want: []string{"k8s.schedule", "k8s.schedule"},
		},
		{
			name: "shortest value bounds the chop",
			in:   []string{"a.b.c.d.e", "a.b.c.d"},
			want: []string{"..c.d.e", "..c.d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]map[string]interface{}, len(tt.in))
			for i, v := range tt.in {
				data[i] = map[string]interface{}{"name": v, "value": v, "depth": i}
			}

			chopPrefix(data, "name")

			for i, want := range tt.want {
				assert.Equal(t, want, data[i]["name"])
				assert.Equal(t, tt.in[i], data[i]["value"], "other keys untouched")
				assert.Equal(t, i, data[i]["depth"])
			}
		})
	}
}

func TestChopPrefix_NonString(t *testing.T) {
	data := []map[string]interface{}{
		{"name": 1},
		{"name": "a.b.c.d"},
	}
	chopPrefix(data, "name")
	assert.Equal(t, 1, data[0]["name"])
	assert.Equal(t, "..c.d", data[1]["name"])
}
