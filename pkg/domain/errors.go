package domain

import "errors"

// ErrFontUnavailable is returned when the host cannot load a font.
var ErrFontUnavailable = errors.New("font unavailable")

// ErrUnknownProperty is returned when a property key has no copy rule.
var ErrUnknownProperty = errors.New("unknown property")

// ErrPropertyScope is returned when a text-only property targets a non-text node.
var ErrPropertyScope = errors.New("property not valid for node type")

// ErrClone is returned when a property value cannot be deep-copied.
var ErrClone = errors.New("failed to clone property value")

// ErrInvalidNode is returned when a node carries fields its category does not allow.
var ErrInvalidNode = errors.New("invalid node")

// ErrNodeNotFound is returned when a node is not attached to the document.
var ErrNodeNotFound = errors.New("node not found")

// ErrReportNotFound is returned when a report ID cannot be found in the store.
var ErrReportNotFound = errors.New("report not found")

// ErrUnknownMode is returned when a host command does not map to a Mode.
var ErrUnknownMode = errors.New("unknown mode")
