// Package script replays edit scripts against a document with undo history.
//
// A script names a seed document and a list of steps. Each step either edits
// the document at a path (set, swap, append, remove) or moves through the
// history (undo, redo, reset, restore). Scripts are written in YAML or CUE
// and validated against an embedded CUE schema before they run.
package script

import "fmt"

// Script is a decoded edit script.
type Script struct {
	Name  string `json:"name"`
	Seed  any    `json:"seed"`
	Steps []Step `json:"steps"`
}

// Step is one script action. Exactly one field is set.
type Step struct {
	Set     *SetStep    `json:"set,omitempty"`
	Swap    *SwapStep   `json:"swap,omitempty"`
	Append  *AppendStep `json:"append,omitempty"`
	Remove  *RemoveStep `json:"remove,omitempty"`
	Label   string      `json:"label,omitempty"`
	Undo    int         `json:"undo,omitempty"`
	Redo    int         `json:"redo,omitempty"`
	Reset   bool        `json:"reset,omitempty"`
	Restore bool        `json:"restore,omitempty"`
}

// SetStep stores a value at a path.
type SetStep struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// SwapStep exchanges two elements of a list.
type SwapStep struct {
	Path string `json:"path"`
	I    int    `json:"i"`
	J    int    `json:"j"`
}

// AppendStep adds values to the end of a list.
type AppendStep struct {
	Path   string `json:"path"`
	Values []any  `json:"values"`
}

// RemoveStep deletes one element of a list.
type RemoveStep struct {
	Path  string `json:"path"`
	Index int    `json:"index"`
}

// Action names for steps.
const (
	ActionSeed    = "seed"
	ActionSet     = "set"
	ActionSwap    = "swap"
	ActionAppend  = "append"
	ActionRemove  = "remove"
	ActionLabel   = "label"
	ActionUndo    = "undo"
	ActionRedo    = "redo"
	ActionReset   = "reset"
	ActionRestore = "restore"
)

// Action returns the name of the step's action, or "" if none is set.
func (s Step) Action() string {
	switch {
	case s.Set != nil:
		return ActionSet
	case s.Swap != nil:
		return ActionSwap
	case s.Append != nil:
		return ActionAppend
	case s.Remove != nil:
		return ActionRemove
	case s.Label != "":
		return ActionLabel
	case s.Undo > 0:
		return ActionUndo
	case s.Redo > 0:
		return ActionRedo
	case s.Reset:
		return ActionReset
	case s.Restore:
		return ActionRestore
	default:
		return ""
	}
}

// Describe returns a short human-readable summary of the step.
func (s Step) Describe() string {
	switch s.Action() {
	case ActionSet:
		return fmt.Sprintf("%s = %s", displayPath(s.Set.Path), compactJSON(s.Set.Value))
	case ActionSwap:
		return fmt.Sprintf("%s[%d] <-> [%d]", displayPath(s.Swap.Path), s.Swap.I, s.Swap.J)
	case ActionAppend:
		return fmt.Sprintf("%s += %s", displayPath(s.Append.Path), compactJSON(s.Append.Values))
	case ActionRemove:
		return fmt.Sprintf("%s[%d]", displayPath(s.Remove.Path), s.Remove.Index)
	case ActionLabel:
		return s.Label
	case ActionUndo:
		return fmt.Sprintf("x%d", s.Undo)
	case ActionRedo:
		return fmt.Sprintf("x%d", s.Redo)
	default:
		return ""
	}
}

func displayPath(path string) string {
	if path == "" {
		return "$"
	}
	return path
}
