package cipher

import (
	"bytes"
	"testing"
)

func TestXorContentRoundTrips(t *testing.T) {
	original := []byte("Hello, RGSS! This spans more than four bytes.")

	enc := append([]byte(nil), original...)
	New(V1).XorContent(enc)
	if bytes.Equal(enc, original) {
		t.Fatal("expected ciphertext to differ from plaintext")
	}

	dec := append([]byte(nil), enc...)
	New(V1).XorContent(dec)
	if !bytes.Equal(dec, original) {
		t.Fatalf("round trip mismatch: got %q want %q", dec, original)
	}
}

func TestXorUint32Symmetric(t *testing.T) {
	k1 := New(V3)
	k2 := New(V3)

	enc := k1.XorUint32(0x12345678)
	dec := k2.XorUint32(enc)
	if dec != 0x12345678 {
		t.Fatalf("got %#x want %#x", dec, 0x12345678)
	}
}

func TestXorStringV1StepsEveryByte(t *testing.T) {
	k := WithState(V1, 0x1000)
	before := k.State()
	b := make([]byte, 5)
	k.XorStringV1(b)
	if k.State() == before {
		t.Fatal("expected state to advance")
	}

	// Stepping 5 times from the same seed must match re-deriving by hand.
	manual := WithState(V1, 0x1000)
	for i := 0; i < 5; i++ {
		manual.Step()
	}
	if k.State() != manual.State() {
		t.Fatalf("got %#x want %#x", k.State(), manual.State())
	}
}

func TestXorStringV3DoesNotStep(t *testing.T) {
	k := WithState(V3, 0xCAFEBABE)
	before := k.State()
	b := make([]byte, 9)
	k.XorStringV3(b)
	if k.State() != before {
		t.Fatalf("expected frozen state, got %#x want %#x", k.State(), before)
	}
}

func TestXorContentStepsEveryFourBytes(t *testing.T) {
	k := WithState(V3, 0x1)
	b := make([]byte, 4)
	k.XorContent(b)
	if k.State() == 0x1 {
		t.Fatal("expected state to step after 4 bytes")
	}

	manual := WithState(V3, 0x1)
	manual.Step()
	if k.State() != manual.State() {
		t.Fatalf("got %#x want %#x", k.State(), manual.State())
	}
}

func TestMultiplierAndAccumulatorPerVersion(t *testing.T) {
	v1 := New(V1)
	if v1.multiplier != 7 || v1.accumulator != 3 {
		t.Fatalf("v1 constants wrong: mult=%d acc=%d", v1.multiplier, v1.accumulator)
	}
	if v1.State() != V1InitialState {
		t.Fatalf("v1 initial state = %#x, want %#x", v1.State(), V1InitialState)
	}

	v3 := WithState(V3, 0x42)
	if v3.multiplier != 9 || v3.accumulator != 3 {
		t.Fatalf("v3 constants wrong: mult=%d acc=%d", v3.multiplier, v3.accumulator)
	}
}
