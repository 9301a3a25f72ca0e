// Package runtime implements the reattach orchestrator: for every selected
// frame it resolves a same-named template instance, swaps the frame for a
// fresh instance and optionally copies the frame's overrides onto it.
package runtime
