package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrorEntry is one layer of an error chain as printed by the pretty logger.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// zerrLayer matches the layer accessors of go.trai.ch/zerr errors.
type zerrLayer interface {
	Message() string
	Metadata() map[string]any
}

// collectErrorEntries walks err from the outside in. Layers that only carry
// metadata are folded into the next layer with a message. The walk stops at
// the first error that is not a zerr layer and records its full text.
func collectErrorEntries(err error) []ErrorEntry {
	var (
		entries []ErrorEntry
		pending map[string]any
	)

	for current := err; current != nil; {
		layer, ok := current.(zerrLayer)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error(), Metadata: pending})
			break
		}

		meta := layer.Metadata()
		if layer.Message() == "" {
			if pending == nil {
				pending = map[string]any{}
			}
			maps.Copy(pending, meta)
			current = errors.Unwrap(current)
			continue
		}

		if pending != nil {
			merged := maps.Clone(pending)
			maps.Copy(merged, meta)
			meta = merged
			pending = nil
		}
		entries = append(entries, ErrorEntry{Message: layer.Message(), Metadata: meta})
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders entries as a main error followed by its causes.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		first, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			first, indent = "    → ", "      "
		}

		lines = append(lines, first+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
