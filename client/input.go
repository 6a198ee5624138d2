// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

import (
	"fmt"
	"github.com/SoftbearStudios/tileworld/world"
)

type EventKind uint8

const (
	Quit EventKind = iota
	KeyPress
	MouseWheel
	MouseMoved
	MouseFocusChanged
)

func (kind EventKind) String() string {
	switch kind {
	case Quit:
		return "quit"
	case KeyPress:
		return "keyPress"
	case MouseWheel:
		return "mouseWheel"
	case MouseMoved:
		return "mouseMoved"
	case MouseFocusChanged:
		return "mouseFocusChanged"
	default:
		return fmt.Sprintf("event(%d)", uint8(kind))
	}
}

// Key is a key the game reacts to.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyF2
	KeyO
)

// Event is a discrete input event. Only the fields of its Kind are set.
type Event struct {
	Kind     EventKind
	Key      Key         // KeyPress
	WheelY   float32     // MouseWheel, positive zooms in
	Position world.Vec2f // MouseMoved
	Focused  bool        // MouseFocusChanged
}

// InputSource is polled once per frame.
type InputSource interface {
	// Events since the last call.
	Events() []Event
	CursorPosition() world.Vec2f
}

// ScriptedInput replays one slice of events per frame, then nothing.
type ScriptedInput struct {
	Frames [][]Event
	cursor world.Vec2f
}

func NewScriptedInput(frames ...[]Event) *ScriptedInput {
	return &ScriptedInput{Frames: frames}
}

// Push appends a frame of events.
func (input *ScriptedInput) Push(events ...Event) {
	input.Frames = append(input.Frames, events)
}

func (input *ScriptedInput) Events() []Event {
	if len(input.Frames) == 0 {
		return nil
	}
	events := input.Frames[0]
	input.Frames = input.Frames[1:]

	for _, event := range events {
		if event.Kind == MouseMoved {
			input.cursor = event.Position
		}
	}
	return events
}

func (input *ScriptedInput) CursorPosition() world.Vec2f {
	return input.cursor
}
