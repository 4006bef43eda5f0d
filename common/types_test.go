package common

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#ffffff", want: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{in: "0x102030", want: color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}},
		{in: "10203040", want: color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{in: "#fff", wantErr: true},
		{in: "#gggggg", wantErr: true},
	}
	for _, test := range tests {
		got, err := ParseHexColor(test.in)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, want error %t", test.in, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestKeyClassification(t *testing.T) {
	for _, b := range PointerButtons {
		if !b.IsPointer() {
			t.Errorf("%v: IsPointer() = false", b)
		}
	}
	for _, k := range []Key{KeyEscape, KeyWindowClose, KeySpace, KeyA} {
		if k.IsPointer() {
			t.Errorf("%v: IsPointer() = true", k)
		}
	}
	if got := KeyA.String(); got != "A" {
		t.Errorf("KeyA.String() = %q", got)
	}
}
