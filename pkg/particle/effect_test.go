package particle

import (
	"testing"

	"github.com/vango-dev/particlewire/pkg/protocol"
)

func TestEffectByName(t *testing.T) {
	tests := []struct {
		name   string
		want   Effect
		wantOK bool
	}{
		{"REDSTONE", Redstone, true},
		{"redstone", Redstone, true},
		{"block-crack", BlockCrack, true},
		{" sculk charge ", SculkCharge, true},
		{"dust", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := EffectByName(tt.name)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("EffectByName(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestEffectTableIsComplete(t *testing.T) {
	for _, e := range Effects() {
		d := e.Describe()
		if d.Effect != e {
			t.Errorf("descriptor %d names effect %d", e, d.Effect)
		}
		if e.String() == "" || e.String() == "UNKNOWN" {
			t.Errorf("effect %d has no name", e)
		}
		if back, ok := EffectByName(e.String()); !ok || back != e {
			t.Errorf("EffectByName(%s) = %v, %v", e, back, ok)
		}
		if d.Since < protocol.MinVersion {
			t.Errorf("%s: Since = %d", e, d.Since)
		}
	}
}

func TestWireName(t *testing.T) {
	tests := []struct {
		effect Effect
		v      protocol.Version
		want   string
		wantOK bool
	}{
		{Redstone, 8, "REDSTONE", true},
		{Redstone, 12, "REDSTONE", true},
		{Redstone, 13, "dust", true},
		{Redstone, 19, "dust", true},
		{Footstep, 8, "", false},
		{Footstep, 9, "FOOTSTEP", true},
		{Footstep, 12, "FOOTSTEP", true},
		{Footstep, 13, "", false},
		{Vibration, 16, "", false},
		{Vibration, 17, "vibration", true},
		{Shriek, 18, "", false},
		{Shriek, 19, "shriek", true},
		{Effect(60000), 19, "", false},
	}

	for _, tt := range tests {
		got, ok := tt.effect.Describe().WireName(tt.v)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("%s.WireName(%d) = %q, %v; want %q, %v", tt.effect, tt.v, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCapability(t *testing.T) {
	c := CapColorable | CapDust
	if !c.Has(CapDust) || !c.Has(CapColorable|CapDust) || c.Has(CapDirectional) {
		t.Errorf("Has() wrong for %s", c)
	}
	if got := c.String(); got != "colorable|dust" {
		t.Errorf("String() = %q; want colorable|dust", got)
	}
	if got := Capability(0).String(); got != "none" {
		t.Errorf("String() = %q; want none", got)
	}
}
