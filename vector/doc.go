// Package vector implements the resolver protocol for externally
// rendered vector content: resources whose pixels are produced
// asynchronously by a pluggable renderer from a recorded command
// stream.
//
// Request and resolve are decoupled: the frame builder requests the
// keys a frame needs, the renderer rasterizes them off to the side, and
// resolve collects the results. Each key carries an explicit tagged
// state (unrequested, requested, resolved) so that a resolve with no
// pending request is detected as a contract violation instead of being
// silently ignored.
package vector
