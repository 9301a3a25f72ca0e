package domain_test

import (
	"testing"

	"github.com/aretw0/reattach/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func children(n int, prefix string) []*domain.Node {
	out := make([]*domain.Node, n)
	for i := range out {
		out[i] = &domain.Node{ID: prefix + string(rune('a'+i)), Category: domain.CategoryRectangle}
	}
	return out
}

func TestZipChildren_StopsAtShorterSide(t *testing.T) {
	src := &domain.Node{ID: "src", Category: domain.CategoryFrame, Children: children(3, "s")}
	dst := &domain.Node{ID: "dst", Category: domain.CategoryInstance, Children: children(2, "d")}

	var pairs [][2]string
	for s, d := range domain.ZipChildren(src, dst) {
		pairs = append(pairs, [2]string{s.ID, d.ID})
	}

	assert.Equal(t, [][2]string{{"sa", "da"}, {"sb", "db"}}, pairs)
}

func TestZipChildren_SkipsNilEntries(t *testing.T) {
	src := &domain.Node{ID: "src", Category: domain.CategoryFrame, Children: children(3, "s")}
	dst := &domain.Node{ID: "dst", Category: domain.CategoryInstance, Children: children(3, "d")}
	dst.Children[1] = nil

	var ids []string
	for s := range domain.ZipChildren(src, dst) {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"sa", "sc"}, ids)
}

func TestZipChildren_NilOrLeaf(t *testing.T) {
	leaf := &domain.Node{ID: "leaf", Category: domain.CategoryText}
	for range domain.ZipChildren(nil, leaf) {
		t.Fatal("nil source must not yield")
	}
	for range domain.ZipChildren(leaf, leaf) {
		t.Fatal("leaves must not yield")
	}
}

func TestWalk_PreOrder(t *testing.T) {
	root := &domain.Node{ID: "root", Category: domain.CategoryPage, Children: []*domain.Node{
		{ID: "a", Category: domain.CategoryFrame, Children: []*domain.Node{
			{ID: "a1", Category: domain.CategoryText},
		}},
		{ID: "b", Category: domain.CategoryRectangle},
	}}

	var order []string
	domain.Walk(root, func(n *domain.Node) bool {
		order = append(order, n.ID)
		return true
	})
	assert.Equal(t, []string{"root", "a", "a1", "b"}, order)

	order = nil
	domain.Walk(root, func(n *domain.Node) bool {
		order = append(order, n.ID)
		return n.ID != "a"
	})
	assert.Equal(t, []string{"root", "a"}, order)
}

func TestNode_Validate(t *testing.T) {
	tests := []struct {
		name    string
		node    *domain.Node
		wantErr bool
	}{
		{
			name: "valid tree",
			node: &domain.Node{ID: "f", Category: domain.CategoryFrame, Children: []*domain.Node{
				{ID: "t", Category: domain.CategoryText, Text: &domain.TextProps{Characters: "hi"}},
			}},
		},
		{
			name:    "text with children",
			node:    &domain.Node{ID: "t", Category: domain.CategoryText, Children: children(1, "c")},
			wantErr: true,
		},
		{
			name:    "frame with text props",
			node:    &domain.Node{ID: "f", Category: domain.CategoryFrame, Text: &domain.TextProps{}},
			wantErr: true,
		},
		{
			name:    "unknown type",
			node:    &domain.Node{ID: "x", Category: "SLICE"},
			wantErr: true,
		},
		{
			name:    "missing id",
			node:    &domain.Node{Category: domain.CategoryFrame},
			wantErr: true,
		},
		{
			name: "invalid descendant",
			node: &domain.Node{ID: "f", Category: domain.CategoryFrame, Children: []*domain.Node{
				{ID: "r", Category: domain.CategoryRectangle, Children: children(1, "c")},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidNode)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsTemplateNamed(t *testing.T) {
	match := domain.IsTemplateNamed("Card")

	assert.True(t, match(&domain.Node{Category: domain.CategoryInstance, Name: "Card"}))
	assert.False(t, match(&domain.Node{Category: domain.CategoryFrame, Name: "Card"}))
	assert.False(t, match(&domain.Node{Category: domain.CategoryInstance, Name: "Card 2"}))
}

func TestParseMode(t *testing.T) {
	m, err := domain.ParseMode("reattach")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeReattach, m)

	m, err = domain.ParseMode("copyOverrides")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeCopyOverrides, m)

	_, err = domain.ParseMode("detach")
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestReport_RecordAndSummary(t *testing.T) {
	r := &domain.Report{}
	r.Record(domain.ItemResult{NodeID: "1", Outcome: domain.OutcomeReattached})
	r.Record(domain.ItemResult{NodeID: "2", Outcome: domain.OutcomeSkippedNoTemplate})
	r.Record(domain.ItemResult{NodeID: "3", Outcome: domain.OutcomeReattached})

	assert.Equal(t, 2, r.Processed)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, "2 processed, 1 skipped", r.Summary())

	r.Record(domain.ItemResult{NodeID: "4", Outcome: domain.OutcomeCopyFailed, Error: "font missing"})
	assert.Equal(t, 3, r.Processed)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, "3 processed, 1 skipped (1 failed: font missing)", r.Summary())
}

func TestFontName_String(t *testing.T) {
	assert.Equal(t, "Inter Bold", domain.FontName{Family: "Inter", Style: "Bold"}.String())
	assert.Equal(t, "Inter", domain.FontName{Family: "Inter"}.String())
}

func TestReport_SummaryNamesCopyFailureOnly(t *testing.T) {
	r := &domain.Report{}
	r.Record(domain.ItemResult{NodeID: "1", Outcome: domain.OutcomeCopyFailed, Error: "font missing"})
	r.Record(domain.ItemResult{NodeID: "2", Outcome: domain.OutcomeSkippedHostError, Error: "host busy"})

	assert.Equal(t, []string{"font missing", "host busy"}, r.Diagnostics)
	assert.Equal(t, "1 processed, 1 skipped (1 failed: font missing)", r.Summary())
}
