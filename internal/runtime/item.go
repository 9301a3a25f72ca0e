package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/reattach/pkg/domain"
	"github.com/aretw0/reattach/pkg/fonts"
	"github.com/aretw0/reattach/pkg/overrides"
	"github.com/aretw0/reattach/pkg/ports"
)

// run carries the state of one Reattach call.
type run struct {
	host      ports.Host
	mode      domain.Mode
	logger    *slog.Logger
	templates *templateCache
	preloader *fonts.Preloader
}

// process swaps one selected node. The returned result is never empty.
func (r *run) process(ctx context.Context, node *domain.Node) domain.ItemResult {
	item := domain.ItemResult{NodeID: node.ID, NodeName: node.Name}

	if !node.IsFrame() {
		item.Outcome = domain.OutcomeSkippedNotFrame
		return item
	}

	tmpl, err := r.templates.Resolve(ctx, node.Name)
	if err != nil {
		return r.hostError(item, fmt.Errorf("find template %q: %w", node.Name, err))
	}
	if tmpl == nil {
		item.Outcome = domain.OutcomeSkippedNoTemplate
		return item
	}

	inst, err := r.place(ctx, node, tmpl)
	if err != nil {
		return r.hostError(item, err)
	}
	item.InstanceID = inst.ID
	item.Outcome = domain.OutcomeReattached

	if r.mode == domain.ModeCopyOverrides {
		if err := r.copyOverrides(ctx, node, inst); err != nil {
			item.Outcome = domain.OutcomeCopyFailed
			item.Error = fmt.Sprintf("copy overrides from %q to %q: %v", node.Name, inst.Name, err)
			r.logger.Warn("copy overrides failed", "node_id", node.ID, "node_name", node.Name, "instance_id", inst.ID, "err", err)
		}
	}

	if err := r.host.Remove(ctx, node); err != nil {
		r.discard(ctx, inst)
		item.InstanceID = ""
		return r.hostError(item, fmt.Errorf("remove %q: %w", node.Name, err))
	}
	return item
}

// discard detaches an instance that could not take the node's place.
func (r *run) discard(ctx context.Context, inst *domain.Node) {
	if err := r.host.Remove(ctx, inst); err != nil {
		r.logger.Warn("could not discard instance", "instance_id", inst.ID, "err", err)
	}
}

// place creates an instance of tmpl next to node, matching its geometry.
// The instance is detached again if it cannot be positioned or resized.
func (r *run) place(ctx context.Context, node, tmpl *domain.Node) (_ *domain.Node, err error) {
	inst, err := r.host.CreateInstance(ctx, tmpl)
	if err != nil {
		return nil, fmt.Errorf("create instance of %q: %w", tmpl.Name, err)
	}
	parent, err := r.host.Parent(ctx, node)
	if err != nil {
		return nil, fmt.Errorf("parent of %q: %w", node.Name, err)
	}
	if err := r.host.AppendChild(ctx, parent, inst); err != nil {
		return nil, fmt.Errorf("insert instance of %q: %w", tmpl.Name, err)
	}
	defer func() {
		if err != nil {
			r.discard(ctx, inst)
		}
	}()
	if err := r.host.SetPosition(ctx, inst, node.X, node.Y); err != nil {
		return nil, fmt.Errorf("position instance of %q: %w", tmpl.Name, err)
	}
	if err := r.host.Resize(ctx, inst, node.Width, node.Height); err != nil {
		return nil, fmt.Errorf("resize instance of %q: %w", tmpl.Name, err)
	}
	return inst, nil
}

// copyOverrides waits for every font in both trees, then copies synchronously.
func (r *run) copyOverrides(ctx context.Context, src, dst *domain.Node) error {
	if err := r.preloader.Preload(ctx, src, dst); err != nil {
		return err
	}
	return overrides.Copy(domain.CopyDirection{Source: src, Destination: dst})
}

func (r *run) hostError(item domain.ItemResult, err error) domain.ItemResult {
	item.Outcome = domain.OutcomeSkippedHostError
	item.Error = err.Error()
	r.logger.Warn("host operation failed", "node_id", item.NodeID, "node_name", item.NodeName, "err", err)
	return item
}
