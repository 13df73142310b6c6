package script

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/furry-ref/docpath"
)

func TestLoadYAML(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "demo.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "demo", s.Name)
	require.Len(t, s.Steps, 10)
	assert.Equal(t, ActionSet, s.Steps[0].Action())
	assert.Equal(t, "title", s.Steps[0].Set.Path)
	assert.Equal(t, "final", s.Steps[0].Set.Value)
	assert.Equal(t, ActionSwap, s.Steps[1].Action())
	assert.Equal(t, 2, s.Steps[1].Swap.J)
	assert.Equal(t, ActionLabel, s.Steps[4].Action())
	assert.Equal(t, 2, s.Steps[5].Undo)
	assert.True(t, s.Steps[9].Restore)

	seed, ok := s.Seed.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "draft", seed["title"])
}

func TestLoadCUEMatchesYAML(t *testing.T) {
	fromYAML, err := Load(filepath.Join("testdata", "demo.yaml"))
	require.NoError(t, err)
	fromCUE, err := Load(filepath.Join("testdata", "demo.cue"))
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromCUE)
}

func TestLoadRejectsUnknownAction(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "unknown_action.yaml"))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, -1, verr.Step)
	assert.Contains(t, verr.Error(), "unknown_action.yaml")
	assert.NotEmpty(t, verr.Details())
}

func TestLoadRejectsNegativeIndex(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "negative_index.yaml"))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestLoadRejectsBadPath(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "bad_path.yaml"))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, verr.Step)

	var syntax *docpath.SyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, "a[1", syntax.Path)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "demo.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported script extension")
}

func TestParseRejectsEmptyStep(t *testing.T) {
	src := []byte("name: empty\nseed: {}\nsteps:\n  - {}\n")
	_, err := Parse(src, FormatYAML, "inline.yaml")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestParseRejectsMissingName(t *testing.T) {
	src := []byte("seed: {}\nsteps: []\n")
	_, err := Parse(src, FormatYAML, "inline.yaml")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("name: [unclosed"), FormatYAML, "inline.yaml")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "parsing YAML")
}

func TestStepDescribe(t *testing.T) {
	tests := []struct {
		step Step
		want string
	}{
		{Step{Set: &SetStep{Path: "a.b", Value: 1.0}}, "a.b = 1"},
		{Step{Set: &SetStep{Path: "", Value: map[string]any{"x": true}}}, `$ = {"x":true}`},
		{Step{Swap: &SwapStep{Path: "items", I: 0, J: 2}}, "items[0] <-> [2]"},
		{Step{Append: &AppendStep{Path: "items", Values: []any{"z"}}}, `items += ["z"]`},
		{Step{Remove: &RemoveStep{Path: "items", Index: 1}}, "items[1]"},
		{Step{Label: "checkpoint"}, "checkpoint"},
		{Step{Undo: 3}, "x3"},
		{Step{Reset: true}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.step.Action(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.step.Describe())
		})
	}
}
