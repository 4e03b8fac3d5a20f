// Package payload implements the fixed-layout binary framing for bulk
// scene bytes shipped out of band from control commands.
//
// A payload block is a 4-byte little-endian epoch, followed by an
// 8-byte little-endian length and the raw display-list bytes, followed
// by an 8-byte little-endian length and the raw auxiliary bytes. There
// is no compression and no checksum; integrity is the transport's
// responsibility.
package payload
