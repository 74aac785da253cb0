package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cosmic-defender/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "h", "left":
		return core.ActionLeft, false
	case "d", "l", "right":
		return core.ActionRight, false
	case " ", "w", "up":
		return core.ActionFire, false
	case "e", "x", "shift+up":
		return core.ActionSpecial, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// Terminals report key presses and auto-repeats but no releases. A held
// action stays active for a short window after each press; the first window
// is longer to bridge the terminal's delay before auto-repeat starts.
const (
	defaultInitialHold = 450 * time.Millisecond
	defaultRepeatHold  = 120 * time.Millisecond
)

// HeldInput turns discrete key presses into per-frame input.
type HeldInput struct {
	Initial  time.Duration
	Repeat   time.Duration
	Autofire bool // Fire is held without a key

	until map[core.Action]time.Time
	edges core.InputFrame
}

// NewHeldInput creates a HeldInput with the default hold windows.
func NewHeldInput() *HeldInput {
	return &HeldInput{
		Initial: defaultInitialHold,
		Repeat:  defaultRepeatHold,
		until:   make(map[core.Action]time.Time),
		edges:   core.NewInputFrame(),
	}
}

func heldAction(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight || a == core.ActionFire
}

// Press records a key press at now. Steering one way releases the other.
func (h *HeldInput) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	if !heldAction(a) {
		h.edges.Set(a)
		return
	}

	switch a {
	case core.ActionLeft:
		delete(h.until, core.ActionRight)
	case core.ActionRight:
		delete(h.until, core.ActionLeft)
	}

	hold := h.Initial
	if until, ok := h.until[a]; ok && now.Before(until) {
		hold = h.Repeat
	}
	if next := now.Add(hold); next.After(h.until[a]) {
		h.until[a] = next
	}
}

// Frame returns the input active at now and consumes pending edge actions.
func (h *HeldInput) Frame(now time.Time) core.InputFrame {
	frame := h.edges.Clone()
	h.edges.Clear()

	for a, until := range h.until {
		if now.Before(until) {
			frame.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	if h.Autofire {
		frame.Set(core.ActionFire)
	}
	return frame
}

// Reset drops every held and pending action.
func (h *HeldInput) Reset() {
	clear(h.until)
	h.edges.Clear()
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
