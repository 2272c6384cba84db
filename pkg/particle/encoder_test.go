package particle

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vango-dev/particlewire/pkg/protocol"
)

func encoderAt(v protocol.Version) *Encoder {
	return NewEncoder(catalogAt(v))
}

func request(effect Effect, data Data) Request {
	return Request{
		Effect:  effect,
		X:       10.5,
		Y:       64,
		Z:       -3.25,
		OffsetX: 0.25,
		OffsetY: 0.5,
		OffsetZ: 0.75,
		Speed:   0.1,
		Amount:  12,
		Payload: Bind(effect, data),
	}
}

func TestEncodeSimple(t *testing.T) {
	for _, v := range []protocol.Version{8, 13, 19} {
		pkt, ok := encoderAt(v).Encode(request(Cloud, nil))
		if !ok {
			t.Fatalf("Encode(Cloud) at %d = nothing", v)
		}
		if pkt.Tier != v.Tier() {
			t.Errorf("Tier = %v; want %v", pkt.Tier, v.Tier())
		}
		if !pkt.LongDistance {
			t.Error("LongDistance = false")
		}
		if pkt.OffsetX != 0.25 || pkt.OffsetY != 0.5 || pkt.OffsetZ != 0.75 || pkt.Speed != 0.1 || pkt.Amount != 12 {
			t.Errorf("at %d: offsets/speed/amount not passed through: %+v", v, pkt)
		}
		if pkt.Extra.Value != nil {
			t.Errorf("at %d: Extra.Value = %v; want nil", v, pkt.Extra.Value)
		}
		if v.Tier() == protocol.TierLegacy && (pkt.Extra.Legacy == nil || len(pkt.Extra.Legacy) != 0) {
			t.Errorf("at %d: Legacy = %#v; want empty non-nil", v, pkt.Extra.Legacy)
		}
		if v.Tier() != protocol.TierLegacy && pkt.Extra.Legacy != nil {
			t.Errorf("at %d: Legacy = %v; want nil", v, pkt.Extra.Legacy)
		}
	}
}

func TestEncodeAbsenceIsTotal(t *testing.T) {
	// every effect/version/payload combination either encodes or reports a
	// known reason, never panics
	payloads := []Data{
		nil,
		Directional{X: 1},
		NewRegularColor(10, 20, 30),
		NewDust(0, 0, 0, 1),
		NewDustTransition(RGBFrom(1, 2, 3), RGBFrom(4, 5, 6), 1),
		NewNoteColor(5),
		NewBlockTexture(BlockMaterial("stone", 1), 0),
		NewItemTexture(ItemStack{Material: ItemMaterial("apple", 260), Count: 1}),
		NewVibrationPath(BlockPos{}, EntityDestination{EntityID: 3}, 10),
		Roll{Value: 1},
		Delay{Ticks: 2},
	}

	for v := protocol.MinVersion; v <= protocol.LatestVersion; v++ {
		enc := encoderAt(v)
		for _, e := range Effects() {
			for _, data := range payloads {
				_, err := enc.Build(request(e, data))
				if err == nil {
					continue
				}
				var encErr *EncodeError
				if !errors.As(err, &encErr) {
					t.Fatalf("Build(%s, %T) at %d error = %T; want *EncodeError", e, data, v, err)
				}
				if ReasonOf(err) == "internal" {
					t.Errorf("Build(%s, %T) at %d error = %v; want a known reason", e, data, v, err)
				}
			}
		}
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	enc := encoderAt(19)
	req := request(Redstone, NewDust(10, 200, 30, 1.5))
	a, _ := enc.Encode(req)
	b, _ := enc.Encode(req)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Encode() not deterministic: %+v vs %+v", a, b)
	}
}

func TestEncodeRegularColorLegacy(t *testing.T) {
	pkt, ok := encoderAt(8).Encode(request(Redstone, NewRegularColor(255, 0, 0)))
	if !ok {
		t.Fatal("Encode() = nothing")
	}
	if pkt.OffsetX != 1 || pkt.OffsetY != 0 || pkt.OffsetZ != 0 {
		t.Errorf("offsets = (%v, %v, %v); want (1, 0, 0)", pkt.OffsetX, pkt.OffsetY, pkt.OffsetZ)
	}
	if pkt.Speed != 1 || pkt.Amount != 0 {
		t.Errorf("speed, amount = %v, %d; want 1, 0", pkt.Speed, pkt.Amount)
	}
	if len(pkt.Extra.Legacy) != 0 || pkt.Extra.Value != nil {
		t.Errorf("Extra = %+v; want empty", pkt.Extra)
	}
	if want := (Handle{"EnumParticle", "REDSTONE"}); pkt.Handle != Param(want) {
		t.Errorf("Handle = %v; want %v", pkt.Handle, want)
	}
}

func TestEncodeRedChannelGuard(t *testing.T) {
	pkt, _ := encoderAt(8).Encode(request(Redstone, NewRegularColor(0, 255, 0)))
	if pkt.OffsetX != minNormalFloat32 || pkt.OffsetX <= 0 {
		t.Errorf("red = %v; want smallest normal float32", pkt.OffsetX)
	}
	if pkt.OffsetY != 1 {
		t.Errorf("green = %v; want 1", pkt.OffsetY)
	}

	// only dust needs the guard
	pkt, _ = encoderAt(8).Encode(request(SpellMob, NewRegularColor(0, 0, 255)))
	if pkt.OffsetX != 0 {
		t.Errorf("SpellMob red = %v; want 0", pkt.OffsetX)
	}
}

func TestEncodeRegularColorStructured(t *testing.T) {
	pkt, ok := encoderAt(13).Encode(request(Redstone, NewRegularColor(255, 0, 0)))
	if !ok {
		t.Fatal("Encode() = nothing")
	}
	want := DustOptions{Type: "ParticleParamRedstone", Color: RGB{R: 1}, Size: 1}
	if pkt.Extra.Value != Value(want) {
		t.Errorf("Extra.Value = %+v; want %+v", pkt.Extra.Value, want)
	}
	if pkt.Speed != 0.1 || pkt.Amount != 12 {
		t.Errorf("speed, amount = %v, %d; want passthrough", pkt.Speed, pkt.Amount)
	}

	// colorable non-dust effects keep the color in the offsets
	pkt, ok = encoderAt(19).Encode(request(SpellMob, NewRegularColor(0, 51, 255)))
	if !ok {
		t.Fatal("Encode(SpellMob) = nothing")
	}
	if pkt.Extra.Value != nil || pkt.OffsetY != 0.2 || pkt.OffsetZ != 1 || pkt.Speed != 1 {
		t.Errorf("SpellMob packet = %+v", pkt)
	}

	// the transition effect gets a symmetric transition
	pkt, ok = encoderAt(17).Encode(request(DustColorTransition, NewRegularColor(0, 0, 255)))
	if !ok {
		t.Fatal("Encode(DustColorTransition) = nothing")
	}
	blue := RGB{B: 1}
	wantT := DustTransitionOptions{Type: "DustColorTransitionOptions", From: blue, To: blue, Size: 1}
	if pkt.Extra.Value != Value(wantT) {
		t.Errorf("Extra.Value = %+v; want %+v", pkt.Extra.Value, wantT)
	}
}

func TestEncodeDust(t *testing.T) {
	pkt, ok := encoderAt(19).Encode(request(Redstone, NewDust(0, 255, 0, 2)))
	if !ok {
		t.Fatal("Encode() = nothing")
	}
	want := DustOptions{Type: "DustParticleOptions", Color: RGB{G: 1}, Size: 2}
	if pkt.Extra.Value != Value(want) {
		t.Errorf("Extra.Value = %+v; want %+v", pkt.Extra.Value, want)
	}
	if pkt.Slot() != Param(want) {
		t.Errorf("Slot() = %v; want the dust value", pkt.Slot())
	}
	if pkt.OffsetX != 0.25 || pkt.Amount != 12 {
		t.Errorf("offsets/amount changed: %+v", pkt)
	}

	// no structured dust before TierFloat; the color rides in the offsets
	pkt, ok = encoderAt(12).Encode(request(Redstone, NewDust(0, 255, 0, 2)))
	if !ok {
		t.Fatal("Encode() at 12 = nothing")
	}
	if pkt.OffsetX != minNormalFloat32 || pkt.OffsetY != 1 || pkt.Speed != 1 || pkt.Amount != 0 {
		t.Errorf("legacy dust packet = %+v", pkt)
	}
}

func TestEncodeDustTransition(t *testing.T) {
	from, to := RGBFrom(255, 0, 0), RGBFrom(0, 0, 255)
	pkt, ok := encoderAt(17).Encode(request(DustColorTransition, NewDustTransition(from, to, 1.5)))
	if !ok {
		t.Fatal("Encode() = nothing")
	}
	want := DustTransitionOptions{Type: "DustColorTransitionOptions", From: from, To: to, Size: 1.5}
	if pkt.Extra.Value != Value(want) {
		t.Errorf("Extra.Value = %+v; want %+v", pkt.Extra.Value, want)
	}

	// the transition effect does not exist before 17
	if _, ok := encoderAt(16).Encode(request(DustColorTransition, NewDustTransition(from, to, 1))); ok {
		t.Error("Encode() at 16 should produce nothing")
	}
}

func TestEncodeNote(t *testing.T) {
	tests := []struct {
		index int
		want  float32
	}{
		{0, 0},
		{12, 0.5},
		{24, 1},
		{30, 1},
		{-5, 0},
	}

	enc := encoderAt(13)
	for _, tt := range tests {
		pkt, ok := enc.Encode(request(Note, NewNoteColor(tt.index)))
		if !ok {
			t.Fatalf("Encode(note %d) = nothing", tt.index)
		}
		if pkt.OffsetX != tt.want || pkt.OffsetY != 0 || pkt.OffsetZ != 0 {
			t.Errorf("note %d offsets = (%v, %v, %v); want (%v, 0, 0)", tt.index, pkt.OffsetX, pkt.OffsetY, pkt.OffsetZ, tt.want)
		}
		if pkt.Speed != 1 || pkt.Amount != 0 {
			t.Errorf("note %d speed, amount = %v, %d; want 1, 0", tt.index, pkt.Speed, pkt.Amount)
		}
		if pkt.Extra.Value != nil {
			t.Errorf("note %d has a structured value", tt.index)
		}
	}

	if got := NewNoteColor(30).Index(); got != 24 {
		t.Errorf("NewNoteColor(30).Index() = %d; want 24", got)
	}
	if got := NewNoteColor(-5).Index(); got != 0 {
		t.Errorf("NewNoteColor(-5).Index() = %d; want 0", got)
	}
}

func TestEncodeBlockTexture(t *testing.T) {
	stone := NewBlockTexture(BlockMaterial("stone", 1), 3)

	legacy, ok := encoderAt(12).Encode(request(BlockCrack, stone))
	if !ok {
		t.Fatal("Encode() at 12 = nothing")
	}
	if !reflect.DeepEqual(legacy.Extra.Legacy, []int32{1, 3}) {
		t.Errorf("Legacy = %v; want [1 3]", legacy.Extra.Legacy)
	}
	if want := (Handle{"EnumParticle", "BLOCK_CRACK"}); legacy.Handle != Param(want) {
		t.Errorf("Handle = %v; want %v", legacy.Handle, want)
	}

	modern, ok := encoderAt(13).Encode(request(BlockCrack, stone))
	if !ok {
		t.Fatal("Encode() at 13 = nothing")
	}
	want := BlockOptions{
		Type:     "ParticleParamBlock",
		Particle: Handle{"IRegistry.PARTICLE_TYPE", "minecraft:block"},
		State:    BlockState{Type: "IBlockData", Key: "minecraft:stone"},
	}
	if modern.Handle != Param(want) {
		t.Errorf("Handle = %+v; want %+v", modern.Handle, want)
	}
	if modern.Extra.Value != nil || modern.Extra.Legacy != nil {
		t.Errorf("Extra = %+v; want empty", modern.Extra)
	}
	if modern.Amount != 12 || modern.OffsetX != 0.25 {
		t.Errorf("offsets/amount changed: %+v", modern)
	}
}

func TestEncodeBlockTextureNeedsBlock(t *testing.T) {
	item := NewBlockTexture(ItemMaterial("apple", 260), 0)
	_, err := encoderAt(19).Build(request(BlockCrack, item))
	if !errors.Is(err, ErrConstruction) {
		t.Errorf("Build() error = %v; want ErrConstruction", err)
	}
}

func TestEncodeItemTexture(t *testing.T) {
	diamond := NewItemTexture(ItemStack{Material: ItemMaterial("diamond", 264), Damage: 2})

	legacy, ok := encoderAt(8).Encode(request(ItemCrack, diamond))
	if !ok {
		t.Fatal("Encode() at 8 = nothing")
	}
	if !reflect.DeepEqual(legacy.Extra.Legacy, []int32{264, 2}) {
		t.Errorf("Legacy = %v; want [264 2]", legacy.Extra.Legacy)
	}

	modern, ok := encoderAt(19).Encode(request(ItemCrack, diamond))
	if !ok {
		t.Fatal("Encode() at 19 = nothing")
	}
	want := ItemOptions{
		Type:     "ItemParticleOption",
		Particle: Handle{"Registry.PARTICLE_TYPE", "minecraft:item"},
		Item:     ItemValue{Type: "ItemStack", Key: "minecraft:diamond", Count: 1},
	}
	if modern.Handle != Param(want) {
		t.Errorf("Handle = %+v; want %+v", modern.Handle, want)
	}
}

func TestEncodeVibration(t *testing.T) {
	origin := BlockPos{X: 1, Y: 2, Z: 3}
	dest := BlockDestination{Pos: BlockPos{X: 4, Y: 5, Z: 6}}

	// well-formed but the effect does not exist yet
	if _, ok := encoderAt(16).Encode(request(Vibration, NewVibrationPath(origin, dest, 20))); ok {
		t.Error("Encode() at 16 should produce nothing")
	}

	// 17 and 18 need an origin
	_, err := encoderAt(17).Build(request(Vibration, NewVibrationTo(dest, 20)))
	if !errors.Is(err, ErrConstruction) {
		t.Errorf("Build() without origin at 17 error = %v; want ErrConstruction", err)
	}

	pkt, ok := encoderAt(18).Encode(request(Vibration, NewVibrationPath(origin, dest, 20)))
	if !ok {
		t.Fatal("Encode() at 18 = nothing")
	}
	got, isVib := pkt.Extra.Value.(VibrationOptions)
	if !isVib {
		t.Fatalf("Extra.Value = %T; want VibrationOptions", pkt.Extra.Value)
	}
	if got.Path != "VibrationPath" || got.Origin == nil || *got.Origin != (Position{Type: "BlockPos", X: 1, Y: 2, Z: 3}) {
		t.Errorf("18 vibration = %+v", got)
	}
	if got.Source != PositionSource(BlockSource{Type: "BlockPositionSource", Pos: Position{Type: "BlockPos", X: 4, Y: 5, Z: 6}}) {
		t.Errorf("Source = %+v", got.Source)
	}

	// 19 drops the origin and accepts entity targets
	pkt, ok = encoderAt(19).Encode(request(Vibration, NewVibrationTo(EntityDestination{EntityID: 7, EyeHeight: 1.62}, 40)))
	if !ok {
		t.Fatal("Encode() at 19 = nothing")
	}
	got = pkt.Extra.Value.(VibrationOptions)
	if got.Origin != nil || got.Path != "" || got.Ticks != 40 {
		t.Errorf("19 vibration = %+v", got)
	}
	if got.Source != PositionSource(EntitySource{Type: "EntityPositionSource", EntityID: 7, YOffset: 1.62}) {
		t.Errorf("Source = %+v", got.Source)
	}
}

func TestEncodeRollAndDelay(t *testing.T) {
	enc := encoderAt(19)

	pkt, ok := enc.Encode(request(SculkCharge, Roll{Value: 1.5}))
	if !ok {
		t.Fatal("Encode(Roll) = nothing")
	}
	if want := (SculkChargeOptions{Type: "SculkChargeParticleOptions", Roll: 1.5}); pkt.Extra.Value != Value(want) {
		t.Errorf("Extra.Value = %+v; want %+v", pkt.Extra.Value, want)
	}

	pkt, ok = enc.Encode(request(Shriek, Delay{Ticks: 8}))
	if !ok {
		t.Fatal("Encode(Delay) = nothing")
	}
	if want := (ShriekOptions{Type: "ShriekParticleOption", Delay: 8}); pkt.Extra.Value != Value(want) {
		t.Errorf("Extra.Value = %+v; want %+v", pkt.Extra.Value, want)
	}

	if _, err := enc.Build(request(Shriek, Delay{Ticks: -1})); !errors.Is(err, ErrConstruction) {
		t.Errorf("Build(negative delay) error = %v; want ErrConstruction", err)
	}
}

func TestEncodeDirectional(t *testing.T) {
	pkt, ok := encoderAt(19).Encode(request(Flame, Directional{X: 0, Y: 1, Z: 0}))
	if !ok {
		t.Fatal("Encode() = nothing")
	}
	if pkt.OffsetX != 0 || pkt.OffsetY != 1 || pkt.OffsetZ != 0 || pkt.Amount != 0 {
		t.Errorf("packet = %+v; want offsets (0,1,0) and amount 0", pkt)
	}
	if pkt.Speed != 0.1 {
		t.Errorf("Speed = %v; want passthrough", pkt.Speed)
	}
}

func TestEncodeEmptyPayload(t *testing.T) {
	enc := encoderAt(19)
	want, _ := enc.Encode(Request{Effect: Ash, Speed: 1})
	got, ok := enc.Encode(Request{Effect: Ash, Speed: 1, Payload: &Payload{}})
	if !ok {
		t.Fatal("Encode() with an empty payload = nothing; want the bare effect")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode() = %+v; want %+v", got, want)
	}
}

func TestEncodeFailures(t *testing.T) {
	dust := NewDust(1, 2, 3, 1)

	tests := []struct {
		name   string
		v      protocol.Version
		req    Request
		reason string
	}{
		{"block effect without payload", 19, request(BlockCrack, nil), "payload_incompatible"},
		{"item effect without payload", 12, request(ItemCrack, nil), "payload_incompatible"},
		{"effect not yet present", 18, request(Shriek, Delay{Ticks: 1}), "symbol_unresolved"},
		{"effect removed", 13, request(Footstep, nil), "symbol_unresolved"},
		{"wrong payload kind", 19, request(Cloud, dust), "payload_incompatible"},
		{"payload bound to another effect", 19, Request{Effect: DustColorTransition, Payload: Bind(Redstone, dust)}, "payload_incompatible"},
		{"velocity instead of item", 19, request(ItemCrack, Directional{Y: 1}), "payload_incompatible"},
		{"velocity instead of item legacy", 8, request(ItemCrack, Directional{Y: 1}), "payload_incompatible"},
		{"velocity instead of block", 19, request(BlockDust, Directional{Y: 1}), "payload_incompatible"},
		{"empty payload on block effect", 19, Request{Effect: BlockCrack, Payload: &Payload{}}, "payload_incompatible"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkt, err := encoderAt(tt.v).Build(tt.req)
			if err == nil {
				t.Fatalf("Build() = %+v; want nothing", pkt)
			}
			if got := ReasonOf(err); got != tt.reason {
				t.Errorf("ReasonOf(%v) = %q; want %q", err, got, tt.reason)
			}
			if _, ok := encoderAt(tt.v).Encode(tt.req); ok {
				t.Error("Encode() = true; want false")
			}
		})
	}
}

func TestEncodeCoordinateWidth(t *testing.T) {
	const x = 1.1

	narrow, _ := encoderAt(14).Encode(Request{Effect: Cloud, X: x})
	if narrow.X != float64(float32(x)) {
		t.Errorf("X at 14 = %v; want float32 precision", narrow.X)
	}

	wide, _ := encoderAt(15).Encode(Request{Effect: Cloud, X: x})
	if wide.X != x {
		t.Errorf("X at 15 = %v; want %v", wide.X, x)
	}
}

func TestReasonOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{ErrSymbolUnresolved, "symbol_unresolved"},
		{&EncodeError{Err: ErrFeatureBelowTier}, "feature_below_tier"},
		{&EncodeError{Err: ErrConstruction}, "construction_failure"},
		{errors.New("other"), "internal"},
	}

	for _, tt := range tests {
		if got := ReasonOf(tt.err); got != tt.want {
			t.Errorf("ReasonOf(%v) = %q; want %q", tt.err, got, tt.want)
		}
	}
}
