package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/reattach/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportStoreContract runs a suite of tests to verify that a ReportStore implementation
// adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	reportID := "contract-test-report-" + time.Now().Format("20060102150405")

	newReport := func(id string) *domain.Report {
		return &domain.Report{
			ID:         id,
			DocumentID: "doc-1",
			Mode:       domain.ModeCopyOverrides,
			StartedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			FinishedAt: time.Date(2026, 1, 2, 3, 4, 6, 0, time.UTC),
			Processed:  2,
			Skipped:    1,
			Items: []domain.ItemResult{
				{NodeID: "1", NodeName: "Card", Outcome: domain.OutcomeReattached, InstanceID: "i-1"},
				{NodeID: "2", NodeName: "Card", Outcome: domain.OutcomeReattached, InstanceID: "i-2"},
				{NodeID: "3", NodeName: "Ghost", Outcome: domain.OutcomeSkippedNoTemplate},
			},
			Message: "2 processed, 1 skipped",
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		report := newReport(reportID)

		err := store.Save(ctx, report)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.ID, loaded.ID)
		assert.Equal(t, report.Mode, loaded.Mode)
		assert.Equal(t, report.Processed, loaded.Processed)
		assert.Equal(t, report.Skipped, loaded.Skipped)
		assert.Equal(t, report.Items, loaded.Items)
		assert.Equal(t, report.Message, loaded.Message)
		assert.True(t, report.StartedAt.Equal(loaded.StartedAt), "StartedAt should survive persistence")
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		report := newReport(reportID)
		report.Message = "updated"
		require.NoError(t, store.Save(ctx, report))

		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err)
		assert.Equal(t, "updated", loaded.Message)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newReport(reportID)))

		err := store.Delete(ctx, reportID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")

		assert.NoError(t, store.Delete(ctx, reportID), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := reportID + "-1"
		id2 := reportID + "-2"
		require.NoError(t, store.Save(ctx, newReport(id1)))
		require.NoError(t, store.Save(ctx, newReport(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}

// HostFactory builds a fresh host serving doc.
type HostFactory func(t *testing.T, doc *domain.Document) Host

// contractDocument is page > [frame "Card" > text, instance "Card" > text, instance "Card" (second), frame "Other"].
func contractDocument() *domain.Document {
	font := &domain.FontName{Family: "Inter", Style: "Regular"}
	return &domain.Document{
		ID: "contract-doc",
		Root: &domain.Node{ID: "page", Category: domain.CategoryPage, Name: "Page", Children: []*domain.Node{
			{ID: "frame-1", Category: domain.CategoryFrame, Name: "Card", X: 10, Y: 20, Width: 100, Height: 50, Children: []*domain.Node{
				{ID: "frame-1-text", Category: domain.CategoryText, Name: "Label", Text: &domain.TextProps{Characters: "Hi", Style: domain.TextStyle{FontName: font}}},
			}},
			{ID: "inst-1", Category: domain.CategoryInstance, Name: "Card", Width: 80, Height: 40,
				Appearance: domain.Appearance{Fills: []domain.Paint{{Type: "SOLID", Color: &domain.Color{R: 1, A: 1}}}},
				Children: []*domain.Node{
					{ID: "inst-1-text", Category: domain.CategoryText, Name: "Label", Text: &domain.TextProps{Characters: "Label", Style: domain.TextStyle{FontName: font}}},
				}},
			{ID: "inst-2", Category: domain.CategoryInstance, Name: "Card"},
			{ID: "frame-2", Category: domain.CategoryFrame, Name: "Other"},
		}},
		Selection: []string{"frame-2", "frame-1"},
	}
}

// RunHostContract verifies that a Host implementation behaves the way the engine expects.
func RunHostContract(t *testing.T, factory HostFactory) {
	ctx := context.Background()

	t.Run("Selection keeps order", func(t *testing.T) {
		host := factory(t, contractDocument())
		sel, err := host.Selection(ctx)
		require.NoError(t, err)
		require.Len(t, sel, 2)
		assert.Equal(t, "frame-2", sel[0].ID)
		assert.Equal(t, "frame-1", sel[1].ID)
	})

	t.Run("FindNode returns first match", func(t *testing.T) {
		host := factory(t, contractDocument())
		n, err := host.FindNode(ctx, domain.IsTemplateNamed("Card"))
		require.NoError(t, err)
		require.NotNil(t, n)
		assert.Equal(t, "inst-1", n.ID)

		n, err = host.FindNode(ctx, domain.IsTemplateNamed("Missing"))
		require.NoError(t, err)
		assert.Nil(t, n)
	})

	t.Run("CreateInstance is detached and independent", func(t *testing.T) {
		host := factory(t, contractDocument())
		tmpl, err := host.FindNode(ctx, domain.IsTemplateNamed("Card"))
		require.NoError(t, err)

		inst, err := host.CreateInstance(ctx, tmpl)
		require.NoError(t, err)
		require.NotNil(t, inst)
		assert.NotEqual(t, tmpl.ID, inst.ID)
		assert.Equal(t, domain.CategoryInstance, inst.Category)
		assert.Equal(t, tmpl.Name, inst.Name)
		require.Len(t, inst.Children, 1)
		assert.NotEqual(t, tmpl.Children[0].ID, inst.Children[0].ID)

		inst.Fills[0].Color.R = 0
		assert.Equal(t, 1.0, tmpl.Fills[0].Color.R, "instance must not share storage with template")

		_, err = host.Parent(ctx, inst)
		assert.ErrorIs(t, err, domain.ErrNodeNotFound, "fresh instance is detached")
	})

	t.Run("AppendChild, Parent and Remove", func(t *testing.T) {
		host := factory(t, contractDocument())
		sel, err := host.Selection(ctx)
		require.NoError(t, err)
		frame := sel[1]

		parent, err := host.Parent(ctx, frame)
		require.NoError(t, err)
		assert.Equal(t, "page", parent.ID)

		tmpl, err := host.FindNode(ctx, domain.IsTemplateNamed("Card"))
		require.NoError(t, err)
		inst, err := host.CreateInstance(ctx, tmpl)
		require.NoError(t, err)

		require.NoError(t, host.AppendChild(ctx, parent, inst))
		assert.Same(t, inst, parent.Children[len(parent.Children)-1])

		p, err := host.Parent(ctx, inst.Children[0])
		require.NoError(t, err)
		assert.Same(t, inst, p, "descendants of appended nodes are attached too")

		require.NoError(t, host.Remove(ctx, frame))
		found, err := host.FindNode(ctx, func(n *domain.Node) bool { return n.ID == "frame-1" })
		require.NoError(t, err)
		assert.Nil(t, found)
		_, err = host.Parent(ctx, frame)
		assert.ErrorIs(t, err, domain.ErrNodeNotFound)
	})

	t.Run("SetPosition and Resize", func(t *testing.T) {
		host := factory(t, contractDocument())
		sel, err := host.Selection(ctx)
		require.NoError(t, err)
		n := sel[0]

		require.NoError(t, host.SetPosition(ctx, n, 5, 6))
		require.NoError(t, host.Resize(ctx, n, 70, 80))
		assert.Equal(t, []float64{5, 6, 70, 80}, []float64{n.X, n.Y, n.Width, n.Height})
	})

	t.Run("LoadFont is idempotent", func(t *testing.T) {
		host := factory(t, contractDocument())
		font := domain.FontName{Family: "Inter", Style: "Regular"}
		for i := range 3 {
			assert.NoError(t, host.LoadFont(ctx, font), fmt.Sprintf("attempt %d", i))
		}
	})
}
