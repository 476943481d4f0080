package domain

import "time"

// BuildRecord is the persisted result of the last rebuild of a package.
type BuildRecord struct {
	Node        string        `json:"node"`
	Package     string        `json:"package,omitzero"`
	Status      OutcomeStatus `json:"status"`
	Hooks       []Hook        `json:"hooks,omitzero"`
	Fingerprint string        `json:"fingerprint,omitzero"`
	Error       string        `json:"error,omitzero"`
	Timestamp   time.Time     `json:"timestamp,omitzero"`
}
