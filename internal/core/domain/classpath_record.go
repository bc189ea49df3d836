package domain

import "time"

// ClasspathRecord is a persisted inference result for one target in one realm.
type ClasspathRecord struct {
	Target    string    `json:"target,omitzero"`
	Realm     string    `json:"realm,omitzero"`
	InputHash string    `json:"input_hash,omitzero"`
	Roots     []string  `json:"roots,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// RecordKey returns the store key for a target in a realm.
func RecordKey(realm, target string) string {
	return realm + "/" + target
}

// Key returns the store key of the record.
func (r ClasspathRecord) Key() string {
	return RecordKey(r.Realm, r.Target)
}
