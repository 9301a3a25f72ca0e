/*
Package domain contains the core model of the reattach engine.

It defines the design-document node tree, the property sets that can be
copied between nodes, and the reports produced by a run. This package is kept
pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Node: A tagged variant (container, text or shape) with explicit optional fields per category.
  - Property: A copyable key, grouped into effect, color, text content and font style sets.
  - CopyDirection: The (source, destination) pair of one override copy step.
  - Report: The outcome of one run, with per-item results and diagnostics.
*/
package domain
