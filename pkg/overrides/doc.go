/*
Package overrides copies per-instance property overrides between two
structurally congruent node trees.

CloneProperties copies a named set of properties from one node to another with
value semantics. Copy walks two trees in parallel, pairing children by
position, and applies the property sets valid for each pair.

Copy performs no I/O and never suspends. Fonts referenced by either tree must
be loaded beforehand (see package fonts).
*/
package overrides
