package particle

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vango-dev/particlewire/pkg/protocol"
)

func TestPacketRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    protocol.Version
		req  Request
	}{
		{"legacy simple", 8, request(Cloud, nil)},
		{"legacy texture", 12, request(BlockCrack, NewBlockTexture(BlockMaterial("stone", 1), 3))},
		{"legacy color", 8, request(Redstone, NewRegularColor(12, 34, 56))},
		{"float dust", 13, request(Redstone, NewDust(255, 128, 0, 3))},
		{"float block", 14, request(BlockDust, NewBlockTexture(BlockMaterial("sand", 12), 0))},
		{"double transition", 17, request(DustColorTransition, NewDustTransition(RGBFrom(1, 2, 3), RGBFrom(4, 5, 6), 0.5))},
		{"double item", 19, request(ItemCrack, NewItemTexture(ItemStack{Material: ItemMaterial("apple", 260), Count: 3}))},
		{"vibration with origin", 18, request(Vibration, NewVibrationPath(BlockPos{1, -2, 3}, BlockDestination{Pos: BlockPos{4, 5, -6}}, 9))},
		{"vibration to entity", 19, request(Vibration, NewVibrationTo(EntityDestination{EntityID: 42, EyeHeight: 1.5}, 9))},
		{"sculk", 19, request(SculkCharge, Roll{Value: -0.5})},
		{"shriek", 19, request(Shriek, Delay{Ticks: 100})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkt, err := encoderAt(tt.v).Build(tt.req)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			got, err := DecodePacket(pkt.Bytes())
			if err != nil {
				t.Fatalf("DecodePacket() error = %v", err)
			}

			if !reflect.DeepEqual(got.Handle, pkt.Slot()) {
				t.Errorf("slot = %+v; want %+v", got.Handle, pkt.Slot())
			}
			if got.Tier != pkt.Tier || got.LongDistance != pkt.LongDistance {
				t.Errorf("header = %v/%v; want %v/%v", got.Tier, got.LongDistance, pkt.Tier, pkt.LongDistance)
			}
			if got.X != pkt.X || got.Y != pkt.Y || got.Z != pkt.Z {
				t.Errorf("coords = %v,%v,%v; want %v,%v,%v", got.X, got.Y, got.Z, pkt.X, pkt.Y, pkt.Z)
			}
			if got.OffsetX != pkt.OffsetX || got.OffsetY != pkt.OffsetY || got.OffsetZ != pkt.OffsetZ ||
				got.Speed != pkt.Speed || got.Amount != pkt.Amount {
				t.Errorf("motion = %+v; want %+v", got, pkt)
			}
			if !reflect.DeepEqual(got.Extra.Legacy, pkt.Extra.Legacy) {
				t.Errorf("Legacy = %#v; want %#v", got.Extra.Legacy, pkt.Extra.Legacy)
			}
		})
	}
}

func TestPacketSizeByTier(t *testing.T) {
	// same request, only the coordinate width and legacy tail differ
	size := func(v protocol.Version) int {
		pkt, _ := encoderAt(v).Encode(Request{Effect: Flame})
		return len(pkt.Bytes()) - len(pkt.Handle.(Handle).Registry) - len(pkt.Handle.(Handle).Key)
	}

	legacy, float, double := size(8), size(13), size(15)
	if legacy != float+1 {
		t.Errorf("legacy size = %d; want float size + 1 for the empty array", legacy)
	}
	if double != float+12 {
		t.Errorf("double size = %d; want float size + 12", double)
	}
}

func TestDecodePacketErrors(t *testing.T) {
	pkt, _ := encoderAt(19).Encode(request(Cloud, nil))
	data := pkt.Bytes()

	if _, err := DecodePacket(append(append([]byte{}, data...), 0)); !errors.Is(err, protocol.ErrTrailingBytes) {
		t.Errorf("DecodePacket(trailing) error = %v; want ErrTrailingBytes", err)
	}
	for i := 0; i < len(data); i++ {
		if _, err := DecodePacket(data[:i]); err == nil {
			t.Errorf("DecodePacket(truncated to %d) = nil error", i)
		}
	}
	if _, err := DecodePacket([]byte{9}); err == nil {
		t.Error("DecodePacket(bad tier) = nil error")
	}

	bad := append([]byte{}, data...)
	bad[1] = 0x7f
	if _, err := DecodePacket(bad); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("DecodePacket(bad param) error = %v; want ErrUnknownParam", err)
	}
}
