package bytecodec

import (
	"bytes"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		data := []byte{0x00, 0x01, 0xfe, 0xff, 0x7f}
		decoded, err := Decode(Encode(data))
		if err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		if !bytes.Equal(decoded, data) {
			t.Errorf("round trip changed data: %x -> %x", data, decoded)
		}
	})

	t.Run("KnownEncoding", func(t *testing.T) {
		if got := Encode([]byte{0x01, 0x02, 0x03}); got != "AQID" {
			t.Errorf("expected AQID, got %s", got)
		}
	})

	t.Run("NoPadding", func(t *testing.T) {
		// Two input bytes encode to three characters, never to a padded
		// four-character group.
		if got := Encode([]byte{0xff, 0xff}); got != "__8" {
			t.Errorf("expected __8, got %s", got)
		}
	})

	t.Run("RejectsPadding", func(t *testing.T) {
		if _, err := Decode("aGk="); err == nil {
			t.Error("padded input should be rejected")
		}
	})

	t.Run("RejectsStandardAlphabet", func(t *testing.T) {
		// '+' and '/' belong to standard base64, not base64url.
		if _, err := Decode("a+b/"); err == nil {
			t.Error("standard alphabet input should be rejected")
		}
	})
}

func TestAllZero(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want bool
	}{
		{"Nil", nil, true},
		{"Empty", []byte{}, true},
		{"Zeros", make([]byte, 32), true},
		{"LeadingNonzero", append([]byte{1}, make([]byte, 31)...), false},
		{"TrailingNonzero", append(make([]byte, 31), 1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AllZero(tc.in); got != tc.want {
				t.Errorf("AllZero(%x) = %t, want %t", tc.in, got, tc.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a := []byte{1, 2, 3, 4}

	if !Equal(a, []byte{1, 2, 3, 4}) {
		t.Error("equal slices should compare equal")
	}
	if Equal(a, []byte{1, 2, 3, 5}) {
		t.Error("different contents should not compare equal")
	}
	if Equal(a, []byte{1, 2, 3}) {
		t.Error("different lengths should not compare equal")
	}
	if !Equal(nil, []byte{}) {
		t.Error("nil and empty should compare equal")
	}
}
