//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// EndpointStats are the capacity counters reported by the mock and proxy
// stats endpoints. Both share one shape on the wire.
type EndpointStats struct {
	Total          int `json:"total"`
	Enabled        int `json:"enabled"`
	Disabled       int `json:"disabled"`
	MaxEndpoints   int `json:"maxEndpoints"`
	RemainingSlots int `json:"remainingSlots"`
}

// AtCapacity reports whether the server will reject further creates.
func (s EndpointStats) AtCapacity() bool {
	return s.RemainingSlots <= 0
}
