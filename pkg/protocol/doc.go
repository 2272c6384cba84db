// Package protocol holds the wire primitives and version tiering shared by
// the particle packet encoder.
//
// # Versions and tiers
//
// A Version is a game minor release (8 through 19 and later). Versions fall
// into three wire-shape tiers:
//
//	┌────────────┬──────────┬──────────────────────────┬─────────────────────┐
//	│ Tier       │ Versions │ Handle slot              │ Trailing data       │
//	├────────────┼──────────┼──────────────────────────┼─────────────────────┤
//	│ TierLegacy │ < 13     │ effect enum constant     │ int array, float xyz│
//	│ TierFloat  │ 13 - 14  │ effect or structured val │ none, float xyz     │
//	│ TierDouble │ >= 15    │ effect or structured val │ none, double xyz    │
//	└────────────┴──────────┴──────────────────────────┴─────────────────────┘
//
// Finer-grained gates (color transitions, vibrations, sculk payloads) are
// expressed as Features and checked with Version.Supports.
//
// # Encoding
//
// The Encoder and Decoder use:
//
//   - Varint: protobuf-style unsigned varints
//   - ZigZag: signed integers as unsigned varints
//   - Length-prefixed: strings prefixed with a varint length
//   - Big-endian: fixed-width integers and IEEE 754 floats
//
// Coordinates use WriteCoord/ReadCoord so the width follows the tier.
package protocol
