// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package sheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/manifest"
	"github.com/deploygen/deploygen/internal/settings"
	"github.com/deploygen/deploygen/internal/solution"
	"github.com/deploygen/deploygen/internal/tokenizer"
)

var rawTokens = []tokenizer.Token{
	{Name: "log.console.minimumLevel", Value: "Information"},
	{Name: "connectionSettings.Bus.connectionString", Value: "Endpoint=sb://bus/;Key='k'"},
	{Name: "events.FlightDelayed.connectionString", Value: "Endpoint=sb://bus/;Key='k'"},
	{Name: "events.FlightDelayed.parameters.Topic", Value: "flight-delayed"},
	{Name: "events.FlightDelayed.parameters.Subscription", Value: "maintenance"},
	{Name: "events.CrewAssigned.connectionString", Value: ""},
	{Name: "events.CrewAssigned.parameters.Topic", Value: "crew-assigned"},
	{Name: "serviceBusSettings.publisherTopic", Value: "flight-events"},
	{Name: "k8s.schedule", Value: "*/5 * * * *"},
}

func input(app manifest.AppType) Input {
	return Input{
		App:        app,
		AppName:    "Flight",
		DeployName: "flight-api",
		Image:      "acrdevopsbr.azurecr.io/flight/api:latest",
		Entrypoint: solution.Project{Dir: "Flight.Api", File: "Flight.Api.csproj"},
		Tokens:     rawTokens,
		Events: []settings.Event{
			{ID: "FlightDelayed", ConnectionString: "Endpoint=sb://bus/"},
			{ID: "CrewAssigned"},
		},
		PublisherTopic: "flight-events",
		HasPublishers:  true,
		HasSubscribers: true,
	}
}

func names(sheets []*Sheet) []string {
	out := make([]string, 0, len(sheets))
	for _, s := range sheets {
		out = append(out, s.Name)
	}
	return out
}

func TestWorkbook(t *testing.T) {
	tests := []struct {
		name string
		in   func() Input
		want []string
	}{
		{
			name: "api",
			in:   func() Input { return input(manifest.Api) },
			want: []string{RepositoryName, ImageName, TokenizerName, APIGatewayName},
		},
		{
			name: "consumer",
			in:   func() Input { return input(manifest.Consumer) },
			want: []string{RepositoryName, ImageName, TokenizerName, InfraAsCodeName},
		},
		{
			name: "cronjob without bus",
			in: func() Input {
				in := input(manifest.CronJob)
				in.HasPublishers, in.HasSubscribers = false, false
				return in
			},
			want: []string{RepositoryName, ImageName, TokenizerName},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Workbook(tt.in())))
		})
	}
}

func TestTokenizer(t *testing.T) {
	s := Tokenizer(input(manifest.Consumer))

	assert.Equal(t, "Flight/src/k8sdeploy.yaml", s.Cell("A2"))
	assert.Equal(t, "environment", s.Cell("B2"))
	assert.Equal(t, "PRD", s.Cell("E1"))

	rows, cols := s.Dimension()
	assert.Equal(t, len(rawTokens)+2, rows)
	assert.Equal(t, 5, cols)

	assert.Equal(t, "connectionSettings.Bus.connectionString", s.Cell("B4"))
	for _, col := range []string{"C4", "D4", "E4"} {
		assert.Equal(t, "Endpoint=sb://bus/;Key=k", s.Cell(col), "single quotes stripped")
	}
	assert.Equal(t, "k8s.schedule", s.Cell("B11"))
	assert.Equal(t, "*/5 * * * *", s.Cell("C11"))
	assert.Equal(t, []Fill{{Range: "A1:E11", Tone: Green}}, s.Fills)
}

func TestInfraAsCode(t *testing.T) {
	s, ok := InfraAsCode(input(manifest.Consumer))
	require.True(t, ok)

	assert.Equal(t, "Publisher", s.Cell("A1"))
	assert.Equal(t, "serviceBusSettings.publisherTopic", s.Cell("A3"))
	assert.Equal(t, "flight-events", s.Cell("C3"))

	assert.Equal(t, "Subscriber", s.Cell("A5"))
	assert.Equal(t, "Auto Delete", s.Cell("H6"))

	// FlightDelayed pairs with its own tokens, not the first id-less match.
	assert.Equal(t, "events.FlightDelayed.connectionString", s.Cell("A7"))
	assert.Equal(t, "events.FlightDelayed.parameters.Subscription", s.Cell("B7"))
	assert.Equal(t, "events.FlightDelayed.parameters.Topic", s.Cell("C7"))
	assert.Equal(t, MaxConcurrentCallsVariable, s.Cell("E7"))
	assert.Equal(t, "1=1", s.Cell("G7"))

	assert.Equal(t, "events.CrewAssigned.connectionString", s.Cell("A8"))
	assert.Equal(t, "", s.Cell("B8"), "missing subscription token")
	assert.Equal(t, "events.CrewAssigned.parameters.Topic", s.Cell("C8"))
}

func TestInfraAsCode_SubscribersOnly(t *testing.T) {
	in := input(manifest.CronJob)
	in.HasPublishers = false

	s, ok := InfraAsCode(in)
	require.True(t, ok)
	assert.Equal(t, "Subscriber", s.Cell("A1"))
	assert.Equal(t, "events.FlightDelayed.connectionString", s.Cell("A3"))
}

func TestRepositoryAndGateway(t *testing.T) {
	repo := Repository(input(manifest.Api))
	assert.Equal(t, "Flight/src/Flight.Api/Flight.Api.csproj", repo.Cell("B10"))
	assert.Equal(t, "flight-api-__environment__", repo.Cell("B11"))
	assert.Equal(t, "src/k8sdeploy.yaml", repo.Cell("B8"))

	consumer := Repository(input(manifest.Consumer))
	assert.Empty(t, consumer.Cell("B11"))

	gw := APIGateway(input(manifest.Api))
	assert.Equal(t, "flight-api-tst", gw.Cell("E6"))
	assert.Equal(t, "flight-api-prd", gw.Cell("E8"))
	assert.Equal(t, "swaggerDoc.host", gw.Cell("D7"))
}

func TestSheetCells(t *testing.T) {
	s := New("x").Set("C2", "c").SetRow(1, "a", "b")
	assert.Equal(t, "a", s.Cell("A1"))
	assert.Equal(t, "c", s.Cell("C2"))
	assert.Equal(t, "", s.Cell("Z99"))
	assert.Equal(t, "A1:C2", s.DataRange())
	assert.Equal(t, "A1:A1", New("empty").DataRange())
	assert.Panics(t, func() { s.Set("not a cell", "") })
}

func TestWrite(t *testing.T) {
	style := config.SheetStyle{
		Font:        "Calibri",
		ColumnWidth: 20,
		Menu:        "00008B",
		Green:       "32CD32",
		Yellow:      "FFFF00",
		Orange:      "FFA500",
		Red:         "FF0000",
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Workbook(input(manifest.Consumer)), style))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{RepositoryName, ImageName, TokenizerName, InfraAsCodeName}, f.GetSheetList())

	v, err := f.GetCellValue(TokenizerName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "log.console.minimumLevel", v)

	width, err := f.GetColWidth(TokenizerName, "A")
	require.NoError(t, err)
	assert.Equal(t, float64(20), width, "capped by the configured width")

	width, err = f.GetColWidth(ImageName, "A")
	require.NoError(t, err)
	assert.Equal(t, float64(len("Application")), width)

	id, err := f.GetCellStyle(TokenizerName, "A1")
	require.NoError(t, err)
	st, err := f.GetStyle(id)
	require.NoError(t, err)
	assert.True(t, st.Font.Bold)
	assert.Equal(t, "Calibri", st.Font.Family)

	assert.Error(t, Write(&buf, nil, style))
}
