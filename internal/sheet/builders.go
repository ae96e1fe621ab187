// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sheet

import (
	"fmt"
	"strings"

	"github.com/apex/log"

	"github.com/deploygen/deploygen/internal/dockerfile"
	"github.com/deploygen/deploygen/internal/manifest"
	"github.com/deploygen/deploygen/internal/settings"
	"github.com/deploygen/deploygen/internal/solution"
	"github.com/deploygen/deploygen/internal/tokenizer"
)

// Worksheet names.
const (
	RepositoryName  = "Repository"
	ImageName       = "Image"
	TokenizerName   = "Tokenizer"
	APIGatewayName  = "Api Gateway"
	InfraAsCodeName = "Infra As Code"
)

// Environments are the release stages listed as value columns.
var Environments = []string{"TST", "STG", "PRD"}

// MaxConcurrentCallsVariable is the tokenizer variable subscriptions are
// throttled by.
const MaxConcurrentCallsVariable = "eventCustomSettings.AzureServiceBusSettings.MaxConcurrentCalls"

const toFill = "[FILLED BY TEAM]"

// Input is everything the worksheets are built from. Tokens is the literal
// token list with spreadsheet exceptions included.
type Input struct {
	App            manifest.AppType
	AppName        string
	DeployName     string
	Image          string
	Entrypoint     solution.Project
	Tokens         []tokenizer.Token
	Events         []settings.Event
	PublisherTopic string
	HasPublishers  bool
	HasSubscribers bool
}

// Workbook builds the worksheets for the application type in order.
func Workbook(in Input) []*Sheet {
	sheets := []*Sheet{Repository(in), Image(in), Tokenizer(in)}

	switch in.App {
	case manifest.Api:
		sheets = append(sheets, APIGateway(in))
	case manifest.Consumer, manifest.CronJob:
		if s, ok := InfraAsCode(in); ok {
			sheets = append(sheets, s)
		} else {
			log.Warnf("no subscribers or publishers found in the solution, skipping %s worksheet", InfraAsCodeName)
		}
	}
	return sheets
}

// Repository describes the repository layout for the release pipeline.
func Repository(in Input) *Sheet {
	s := New(RepositoryName).
		SetRow(1, "Name", "Description").
		SetRow(2, "Project", in.AppName).
		SetRow(3, "Team", toFill).
		SetRow(4, "Team_Phone", toFill).
		SetRow(5, "Team_Email", toFill).
		SetRow(6, "Repo_Path", in.AppName).
		SetRow(7, "Repo_Path_Dockerfile", "src/"+dockerfile.FileName).
		SetRow(8, "Repo_Path_K8Syml", "src/"+manifest.Tokenized.FileName()).
		SetRow(9, "Repo_Path_Swagger").
		SetRow(10, "Repo_Path_CSProj", in.AppName+"/src/"+in.Entrypoint.Path()).
		SetRow(11, "K8S Deploy Name").
		SetRow(12, "Api Gateway").
		SetRow(13, "URL").
		SetRow(14, "URL Suffix")

	if in.App == manifest.Api {
		s.Set("B9", "src/Api/Swagger/Definition").
			Set("B11", in.DeployName+"-__environment__").
			Set("B12", "ApiM-[env]-Us-General").
			Set("B13", "[FILLED BY ARCHITECTURE]").
			Set("B14", toFill)
	}

	s.SetRow(16, "Color", "Spreadsheet action").
		SetRow(17, "", "New variables and values").
		SetRow(18, "", "Change values").
		SetRow(19, "", "Create or change values defined by architecture").
		SetRow(20, "", "Remove variables and values")

	return s.Paint(Green, "A17").
		Paint(Yellow, "A18").
		Paint(Orange, "A19").
		Paint(Red, "A20").
		Header("A1:B1", "A16:B16").
		Border("A1:B20")
}

// Image describes the container image.
func Image(in Input) *Sheet {
	return New(ImageName).
		SetRow(1, "Application", "File", "Image", "Description").
		SetRow(2, in.AppName, in.AppName+"/src/"+dockerfile.FileName, in.Image, "Tokenized backend service image").
		Header("A1:D1").
		Border("A1:D2").
		Paint(Green, "A2:D2")
}

// Tokenizer lists every variable of the tokenized manifest with its value
// for each environment.
func Tokenizer(in Input) *Sheet {
	file := in.AppName + "/src/" + manifest.Tokenized.FileName()

	s := New(TokenizerName).
		SetRow(1, append([]string{"Tokenized File", "Variables"}, Environments...)...).
		SetRow(2, append([]string{file, "environment"}, Environments...)...)

	for i, tok := range in.Tokens {
		value := strings.ReplaceAll(tok.Value, "'", "")
		s.SetRow(i+3, file, tok.Name, value, value, value)
	}

	data := s.DataRange()
	return s.Paint(Green, data).
		Header("A1:E1").
		Border(data)
}

// APIGateway describes the gateway product of an API.
func APIGateway(in Input) *Sheet {
	s := New(APIGatewayName).
		SetRow(1, "Products", "Subscription Required").
		SetRow(2, in.AppName, "true").
		SetRow(5, "Environment", "Ips Policy", "Public or Private", "Variable", "Service")

	for i, env := range Environments {
		s.SetRow(6+i, env, "", "public", "swaggerDoc.host", in.DeployName+"-"+strings.ToLower(env))
	}

	return s.Border("A1:B2", "A5:E8").
		Header("A1:B1", "A5:E5").
		Paint(Green, "A2:B2", "A6:E8")
}

// InfraAsCode describes the service bus topics and subscriptions. It reports
// false when the solution neither publishes nor subscribes.
func InfraAsCode(in Input) (*Sheet, bool) {
	if !in.HasPublishers && !in.HasSubscribers {
		return nil, false
	}

	s := New(InfraAsCodeName)

	if in.HasPublishers {
		s.SetRow(1, "Publisher").
			SetRow(2, "Variable (Tokenizer sheet)", "Application", "Topic Name", "Description").
			SetRow(3, settings.FieldServiceBusSettings+"."+settings.FieldPublisherTopic, in.AppName, in.PublisherTopic, "").
			Header("A1", "A2:D2").
			Border("A1", "A2:D2", "A3:D3").
			Paint(Green, "A3:D3")
	}

	if in.HasSubscribers {
		start := 1
		if in.HasPublishers {
			start = 5
		}

		s.SetRow(start, "Subscriber").
			SetRow(start+1, "Variable (Tokenizer sheet)", "Subscription Name", "Topic Name",
				"Dead Lettering Expiration", "Max Delivery", "Message Sessions", "Sql Filter", "Auto Delete").
			Header(fmt.Sprintf("A%d", start), fmt.Sprintf("A%d:H%d", start+1, start+1)).
			Border(fmt.Sprintf("A%d", start), fmt.Sprintf("A%d:H%d", start+1, start+1))

		for i, ev := range in.Events {
			row := start + 2 + i
			prefix := settings.FieldEvents + "." + ev.ID + ".parameters."
			s.SetRow(row,
				connectionToken(in.Tokens, ev),
				tokenName(in.Tokens, prefix+"Subscription"),
				tokenName(in.Tokens, prefix+"Topic"),
				"false",
				MaxConcurrentCallsVariable,
				"false",
				"1=1",
				"false",
			)
			s.Paint(Green, fmt.Sprintf("A%d:H%d", row, row)).
				Border(fmt.Sprintf("A%d:H%d", row, row))
		}
	}

	return s, true
}

// tokenName returns name when the token list carries it.
func tokenName(tokens []tokenizer.Token, name string) string {
	for _, tok := range tokens {
		if tok.Name == name {
			return name
		}
	}
	return ""
}

// connectionToken names the token holding an event's connection string: the
// first token naming the event whose value contains the connection string.
func connectionToken(tokens []tokenizer.Token, ev settings.Event) string {
	if ev.ID == "" {
		return ""
	}
	if ev.ConnectionString == "" {
		return tokenName(tokens, settings.FieldEvents+"."+ev.ID+"."+settings.FieldConnectionString)
	}
	for _, tok := range tokens {
		if strings.Contains(tok.Name, ev.ID) && strings.Contains(tok.Value, ev.ConnectionString) {
			return tok.Name
		}
	}
	return ""
}
