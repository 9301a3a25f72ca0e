package selector_test

import (
	"testing"

	"github.com/aretw0/reattach/internal/selector"
	"github.com/aretw0/reattach/pkg/domain"
	"github.com/aretw0/reattach/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	frame := dsl.Frame("f1", "Card / Large").Size(200, 100).Fill(dsl.Solid(1, 0, 0)).
		Children(dsl.Text("t", "Label")).Build()
	text := dsl.Text("t1", "Title").Characters("Hello").Font("Inter", "Bold").Build()

	tests := []struct {
		expr string
		node *domain.Node
		want bool
	}{
		{`type == "FRAME"`, frame, true},
		{`type == "FRAME"`, text, false},
		{`name startsWith "Card"`, frame, true},
		{`width > 150 && children == 1`, frame, true},
		{`fills > 0`, frame, true},
		{`font == "Inter Bold"`, text, true},
		{`characters contains "ell"`, text, true},
		{`id in ["a", "t1"]`, text, true},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			pred, err := selector.Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pred(tt.node))
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	_, err := selector.Compile(`name + 1`)
	assert.Error(t, err, "non-boolean expression")

	_, err = selector.Compile(`colour == "red"`)
	assert.Error(t, err, "unknown field")

	_, err = selector.Compile(`type ==`)
	assert.Error(t, err)
}

func TestPredicate_NilNode(t *testing.T) {
	pred, err := selector.Compile(`true`)
	require.NoError(t, err)
	assert.False(t, pred(nil))
}

type recordingSelection struct {
	ids   []string
	where int
}

func (r *recordingSelection) Select(ids ...string) { r.ids = ids }

func (r *recordingSelection) SelectWhere(pred domain.Predicate) int {
	r.where++
	return 0
}

func TestApply(t *testing.T) {
	var s recordingSelection
	require.NoError(t, selector.Apply(&s, `type == "FRAME"`, []string{"ignored"}))
	assert.Equal(t, 1, s.where)
	assert.Nil(t, s.ids, "expression wins over ids")

	s = recordingSelection{}
	require.NoError(t, selector.Apply(&s, "", []string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, s.ids)

	s = recordingSelection{}
	require.NoError(t, selector.Apply(&s, "", nil))
	assert.Zero(t, s.where)
	assert.Nil(t, s.ids)

	assert.Error(t, selector.Apply(&s, "type ==", nil))
}
