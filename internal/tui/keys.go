// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	esc     key.Binding
	quit    key.Binding
	live    key.Binding
	push    key.Binding
	pull    key.Binding
	restore key.Binding
	delete  key.Binding
	drain   key.Binding
	copy    key.Binding
	reload  key.Binding
	info    key.Binding
	yes     key.Binding
	no      key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	live:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "live on/off")),
	push:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "push")),
	pull:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "pull")),
	restore: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restore")),
	delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	drain:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flush queue")),
	copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy id")),
	reload:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "versions")),
	info:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "about")),
	yes:     key.NewBinding(key.WithKeys("y")),
	no:      key.NewBinding(key.WithKeys("n")),
}

// helpLine lists the console hot keys in display order.
func (k keyMap) helpLine() []key.Binding {
	return []key.Binding{k.live, k.push, k.pull, k.restore, k.delete, k.drain, k.copy, k.reload, k.info, k.quit}
}
