package framecore

// Epoch is a per-pipeline monotonic version counter. It advances exactly
// once per completed display-list submission for its pipeline, and is
// used both for scene consistency (which version of a pipeline is
// visible) and for cache-eviction horizons (unused since epoch E).
type Epoch uint32

// Next returns the epoch after e.
func (e Epoch) Next() Epoch {
	return e + 1
}
