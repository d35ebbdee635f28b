// Package ui assembles the terminal client.
package ui

import (
	"github.com/anibalanto/cardascii-24game/internal/sound"
	"github.com/anibalanto/cardascii-24game/internal/transport"
	"github.com/anibalanto/cardascii-24game/internal/ui/handler"
	"github.com/anibalanto/cardascii-24game/internal/ui/input"
	"github.com/anibalanto/cardascii-24game/internal/ui/model"
	"github.com/anibalanto/cardascii-24game/internal/ui/view"
)

// NewOnlineModel creates the client model connected to serverURL.
func NewOnlineModel(serverURL string) *model.OnlineModel {
	c := transport.NewClient(serverURL)
	m := newModel(c, sound.NewSoundManager())

	c.OnReconnecting = m.NotifyReconnecting
	c.OnReconnect = m.NotifyReconnected
	return m
}

func newModel(c model.GameClient, sounds model.SoundPlayer) *model.OnlineModel {
	m := model.NewOnlineModel(c, sounds)
	m.SetViewRenderer(view.CreateViewRenderer())
	m.SetKeyHandler(input.HandleKeyPress)
	m.SetServerMessageHandler(handler.HandleServerMessage)
	return m
}
