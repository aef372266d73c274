package server

import (
	"strings"

	"github.com/lgbarn/clichess-go/internal/output"
	"github.com/lgbarn/clichess-go/internal/session"
)

type gameResponse struct {
	Snapshot *output.JSONSnapshot `json:"snapshot"`
	History  []output.JSONMove    `json:"history"`
}

type rejectionMessage struct {
	Color   string `json:"color"`
	Attempt int    `json:"attempt"`
	Move    string `json:"move,omitempty"`
	Reason  string `json:"reason"`
}

// eventMessage is pushed to websocket clients.
type eventMessage struct {
	Event     string               `json:"event"`
	Snapshot  *output.JSONSnapshot `json:"snapshot"`
	Move      *output.JSONMove     `json:"move,omitempty"`
	Rejection *rejectionMessage    `json:"rejection,omitempty"`
}

func newEventMessage(ev session.Event) eventMessage {
	msg := eventMessage{
		Event:    ev.Kind.String(),
		Snapshot: output.SnapshotToJSON(ev.Snapshot),
	}
	if ev.Record != nil {
		m := output.MoveToJSON(*ev.Record)
		msg.Move = &m
	}
	if ev.Rejection != nil {
		msg.Rejection = &rejectionMessage{
			Color:   strings.ToLower(ev.Rejection.Colour.String()),
			Attempt: ev.Rejection.Attempt,
			Move:    ev.Rejection.Move,
			Reason:  ev.Rejection.Reason,
		}
	}
	return msg
}
