// model/scanModel.go
package model

// ScanObservation is the reader's single-slot scan register: the last UID
// seen and a timestamp that strictly increases per distinct physical scan.
// An empty UID means nothing new. It is never persisted.
type ScanObservation struct {
	UID       string `json:"uid"`
	Timestamp int64  `json:"timestamp"`
}

// FreshAfter reports whether the observation carries a UID the poller has
// not consumed yet. Stale or empty observations must never dispatch.
func (o ScanObservation) FreshAfter(lastSeen int64) bool {
	return o.UID != "" && o.Timestamp > lastSeen
}
