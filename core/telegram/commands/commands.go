package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command represents a bot command with its handler, description, and metadata.
// OperatorOnly only affects the public command menu; access checks live in the handler.
type Command struct {
	Handler      tele.HandlerFunc
	Description  string
	OperatorOnly bool
	Hidden       bool
	Aliases      []string
}
