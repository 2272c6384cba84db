// Package particle encodes effect display requests into version-specific
// packets.
//
// A Catalog binds the effect table to a mapping.Registry for one protocol
// version. An Encoder uses the catalog to turn a Request into a Packet, or
// into nothing when the effect or its payload cannot be expressed at that
// version:
//
//	reg := mapping.Load(mapping.Default(), 19)
//	enc := particle.NewEncoder(particle.NewCatalog(reg))
//	pkt, ok := particle.NewBuilder(particle.Redstone).
//		At(10, 64, -3).
//		Data(particle.NewDust(255, 0, 0, 1.5)).
//		Encode(enc)
//
// Payloads form a closed set of variants implementing Data. Each variant is
// bound to the effect it was created for; a payload bound to one effect is
// rejected when requested with another.
//
// Packet shape by tier:
//
//	TierLegacy  enum handle, float32 coords, trailing int array
//	TierFloat   registry handle or structured value, float32 coords
//	TierDouble  as TierFloat with float64 coords
//
// Packets are written with Packet.EncodeTo on a protocol.Encoder.
package particle
