// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import "strings"

// Well known field names of the service model.
const (
	FieldEvents             = "events"
	FieldServiceClients     = "serviceClients"
	FieldServiceBusSettings = "serviceBusSettings"
	FieldPublisherTopic     = "publisherTopic"
	FieldSchedule           = "k8s.schedule"
	FieldConnectionString   = "connectionString"
)

// IsIdentifier reports whether a field name marks an identifier. Identifier
// values name their siblings in token paths instead of producing tokens.
func IsIdentifier(wire string) bool {
	return strings.EqualFold(wire, "id") || strings.EqualFold(wire, "key")
}

// Event is the subset of an events entry used for cross-referencing.
type Event struct {
	ID               string
	ConnectionString string
}

// Events lists the configured events in order.
func Events(root *Node) []Event {
	list := root.Get(FieldEvents)
	if list == nil || list.Kind != KindList {
		return nil
	}
	var events []Event
	for _, item := range list.Items {
		if item.Kind != KindObject {
			continue
		}
		events = append(events, Event{
			ID:               item.GetString("id"),
			ConnectionString: item.GetString(FieldConnectionString),
		})
	}
	return events
}

// ServiceClientIDs lists the ids of the configured service clients in order.
func ServiceClientIDs(root *Node) []string {
	list := root.Get(FieldServiceClients)
	if list == nil || list.Kind != KindList {
		return nil
	}
	ids := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		ids = append(ids, item.GetString("id"))
	}
	return ids
}

// PublisherTopic returns serviceBusSettings.publisherTopic or "".
func PublisherTopic(root *Node) string {
	return root.GetString(FieldServiceBusSettings, FieldPublisherTopic)
}

// Schedule returns the cron schedule of a job, or "".
func Schedule(root *Node) string {
	return root.GetString(FieldSchedule)
}
