package script

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-ref/docpath"
	"github.com/odvcencio/furry-ref/history"
	"github.com/odvcencio/furry-ref/keypath"
	"github.com/odvcencio/furry-ref/logging"
)

// Options configures Run.
type Options struct {
	Logger *zap.Logger
	// Clock and Entropy are passed to the history; set both for
	// reproducible entry IDs.
	Clock   func() time.Time
	Entropy io.Reader
}

// Frame records the document after one step.
type Frame struct {
	Step     int             `json:"step"`
	Action   string          `json:"action"`
	Detail   string          `json:"detail,omitempty"`
	Position int             `json:"position"`
	Length   int             `json:"length"`
	EntryID  string          `json:"entry"`
	Label    string          `json:"label,omitempty"`
	Snapshot json.RawMessage `json:"snapshot"`
}

// Result is the outcome of a script run.
type Result struct {
	Name    string          `json:"name"`
	Frames  []Frame         `json:"frames"`
	Final   json.RawMessage `json:"final"`
	Entries []history.Entry `json:"entries"`
}

// Run replays the steps of s against its seed. Frame 0 describes the seed.
// Cancellation is checked between steps.
func Run(ctx context.Context, s *Script, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	hopts := []history.Option{
		history.WithCloner(cloneDocument),
		history.WithLogger(logger.Named(logging.ComponentHistory)),
	}
	if opts.Clock != nil {
		hopts = append(hopts, history.WithClock(opts.Clock))
	}
	if opts.Entropy != nil {
		hopts = append(hopts, history.WithEntropy(opts.Entropy))
	}

	doc := history.New(cloneJSON(s.Seed), hopts...)
	result := &Result{Name: s.Name}
	logger.Info("running script", zap.String("name", s.Name), zap.Int("steps", len(s.Steps)))

	seed, err := frame(doc, 0, ActionSeed, "")
	if err != nil {
		return nil, err
	}
	result.Frames = append(result.Frames, seed)

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("script %s interrupted before step %d: %w", s.Name, i+1, err)
		}
		if err := apply(doc, step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		f, err := frame(doc, i+1, step.Action(), step.Describe())
		if err != nil {
			return nil, err
		}
		logger.Debug("applied step",
			zap.Int("step", f.Step),
			zap.String("action", f.Action),
			zap.Int("position", f.Position),
			zap.Int("length", f.Length))
		result.Frames = append(result.Frames, f)
	}

	final, err := json.Marshal(doc.Value())
	if err != nil {
		return nil, fmt.Errorf("encoding final document: %w", err)
	}
	result.Final = final
	result.Entries = doc.Entries()
	return result, nil
}

func apply(doc *history.Resettable[any], step Step) error {
	switch step.Action() {
	case ActionSet:
		p, err := docpath.Parse(step.Set.Path)
		if err != nil {
			return err
		}
		history.Set(doc, p.KeyPath(), step.Set.Value)
	case ActionSwap:
		list, err := listField(doc, step.Swap.Path)
		if err != nil {
			return err
		}
		history.Swap(list, step.Swap.I, step.Swap.J)
	case ActionAppend:
		list, err := listField(doc, step.Append.Path)
		if err != nil {
			return err
		}
		history.Append(list, step.Append.Values...)
	case ActionRemove:
		list, err := listField(doc, step.Remove.Path)
		if err != nil {
			return err
		}
		history.RemoveAt(list, step.Remove.Index)
	case ActionLabel:
		doc.Annotate(step.Label)
	case ActionUndo:
		for range step.Undo {
			doc.Undo()
		}
	case ActionRedo:
		for range step.Redo {
			doc.Redo()
		}
	case ActionReset:
		doc.Reset()
	case ActionRestore:
		doc.Restore()
	default:
		return fmt.Errorf("step has no action")
	}
	return nil
}

func listField(doc *history.Resettable[any], path string) (history.Field[any, []any], error) {
	p, err := docpath.Parse(path)
	if err != nil {
		return history.Field[any, []any]{}, err
	}
	return history.At(doc, keypath.Append(p.KeyPath(), asList)), nil
}

// asList views a document node as a list. Embedding into a node that is
// not a list leaves it unchanged.
var asList = keypath.New(
	func(root any) []any {
		items, _ := root.([]any)
		return items
	},
	func(items []any, root any) any {
		if _, ok := root.([]any); !ok {
			return root
		}
		return items
	},
)

func frame(doc *history.Resettable[any], step int, action, detail string) (Frame, error) {
	snapshot, err := json.Marshal(doc.Value())
	if err != nil {
		return Frame{}, fmt.Errorf("encoding snapshot for step %d: %w", step, err)
	}
	current := doc.Current()
	return Frame{
		Step:     step,
		Action:   action,
		Detail:   detail,
		Position: doc.Position(),
		Length:   doc.Len(),
		EntryID:  current.ID.String(),
		Label:    current.Label,
		Snapshot: snapshot,
	}, nil
}

// cloneDocument snapshots decoded JSON values without reflection and falls
// back to history.DeepCopy for anything else.
func cloneDocument(dst, src any) error {
	switch s := src.(type) {
	case *any:
		if d, ok := dst.(*any); ok {
			*d = cloneJSON(*s)
			return nil
		}
	case *[]any:
		if d, ok := dst.(*[]any); ok {
			*d, _ = cloneJSON(*s).([]any)
			return nil
		}
	}
	return history.DeepCopy(dst, src)
}

func cloneJSON(v any) any {
	switch v := v.(type) {
	case map[string]any:
		if v == nil {
			return v
		}
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = cloneJSON(item)
		}
		return out
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneJSON(item)
		}
		return out
	default:
		return v
	}
}
