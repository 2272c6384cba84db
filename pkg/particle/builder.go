package particle

// Vec3 is a 3-component vector.
type Vec3 struct {
	X, Y, Z float64
}

// Builder assembles a Request fluently. The zero offsets, speed 1 and amount
// 0 defaults match a single stationary particle.
type Builder struct {
	req  Request
	data Data
}

// NewBuilder starts a request for effect.
func NewBuilder(effect Effect) *Builder {
	return &Builder{req: Request{Effect: effect, Speed: 1}}
}

func (b *Builder) At(x, y, z float64) *Builder {
	b.req.X, b.req.Y, b.req.Z = x, y, z
	return b
}

func (b *Builder) AtVector(v Vec3) *Builder {
	return b.At(v.X, v.Y, v.Z)
}

func (b *Builder) Offset(x, y, z float32) *Builder {
	b.req.OffsetX, b.req.OffsetY, b.req.OffsetZ = x, y, z
	return b
}

// OffsetVector sets all three offsets from v.
func (b *Builder) OffsetVector(v Vec3) *Builder {
	return b.Offset(float32(v.X), float32(v.Y), float32(v.Z))
}

func (b *Builder) OffsetX(x float32) *Builder {
	b.req.OffsetX = x
	return b
}

func (b *Builder) OffsetY(y float32) *Builder {
	b.req.OffsetY = y
	return b
}

func (b *Builder) OffsetZ(z float32) *Builder {
	b.req.OffsetZ = z
	return b
}

func (b *Builder) Speed(speed float32) *Builder {
	b.req.Speed = speed
	return b
}

func (b *Builder) Amount(amount int32) *Builder {
	b.req.Amount = amount
	return b
}

// Color attaches a RegularColor payload.
func (b *Builder) Color(r, g, bl int) *Builder {
	return b.Data(NewRegularColor(r, g, bl))
}

// Note attaches a NoteColor payload.
func (b *Builder) Note(index int) *Builder {
	return b.Data(NewNoteColor(index))
}

// Data attaches a payload. It is bound to the builder's effect by Request.
func (b *Builder) Data(d Data) *Builder {
	b.data = d
	return b
}

// Request returns the assembled request with its payload bound.
func (b *Builder) Request() Request {
	req := b.req
	req.Payload = Bind(req.Effect, b.data)
	return req
}

// Encode builds the request with enc.
func (b *Builder) Encode(enc *Encoder) (Packet, bool) {
	return enc.Encode(b.Request())
}
