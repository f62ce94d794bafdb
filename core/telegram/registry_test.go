package telegram

import (
	"errors"
	"testing"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/rosterbot/core/telegram/commands"
)

func noop(tele.Context) error { return nil }

func TestRegistryListAndAliases(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Start"})
	reg.RegisterCommand("/commands", commands.Command{Handler: noop, Description: "List", Aliases: []string{"help"}})
	reg.RegisterCommand("/promote", commands.Command{Handler: noop, Description: "Promote", OperatorOnly: true})
	reg.RegisterCommand("nostash", commands.Command{Handler: noop, Description: "x"})
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "dup"})

	visible := reg.ListCommands(true)
	if len(visible) != 2 || visible[0].Text != "commands" || visible[1].Text != "start" {
		t.Fatalf("visible = %+v", visible)
	}
	if all := reg.ListCommands(false); len(all) != 3 {
		t.Fatalf("all = %+v", all)
	}
	if aliases := reg.Commands()["/commands"].Aliases; len(aliases) != 1 || aliases[0] != "help" {
		t.Fatalf("aliases = %v", aliases)
	}
	if cmd := reg.Commands()["/start"]; cmd.Description != "Start" {
		t.Fatalf("duplicate overwrote original: %q", cmd.Description)
	}
}

type fakeCommandsAPI struct {
	got []tele.Command
	err error
}

func (f *fakeCommandsAPI) SetCommands(opts ...interface{}) error {
	if len(opts) > 0 {
		f.got, _ = opts[0].([]tele.Command)
	}
	return f.err
}

func TestInitBotCommands(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/myid", commands.Command{Handler: noop, Description: "Show id"})
	api := &fakeCommandsAPI{}
	InitBotCommands(api, reg)
	if len(api.got) != 1 || api.got[0].Text != "myid" {
		t.Fatalf("published = %+v", api.got)
	}
	InitBotCommands(&fakeCommandsAPI{err: errors.New("offline")}, reg)
}
