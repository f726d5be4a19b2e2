// Package cipher implements the legacy LCG stream cipher used by RGSS
// archives (RPG Maker XP/VX/VX Ace). The cipher is not security-bearing; it
// exists to be reproduced bit-for-bit, never strengthened.
package cipher

// Version identifies which RGSS archive generation a Keystream was built for.
type Version int

const (
	// V1 is used by rgssad archives (RPG Maker XP).
	V1 Version = 1
	// V3 is used by rgss2a/rgss3a archives (RPG Maker VX / VX Ace).
	V3 Version = 3
)

// V1InitialState is the fixed seed every V1 archive's keystream starts from.
const V1InitialState uint32 = 0xDEADCAFE

// Keystream is the mutable LCG state shared by every encryption/decryption
// operation over one archive's header/index, and reseeded fresh per entry
// for payload content.
type Keystream struct {
	state      uint32
	multiplier uint32
	accumulator uint32
}

// New returns a keystream using the version's constants and that version's
// conventional initial state: V1 always starts at 0xDEADCAFE; V3 has no
// fixed initial state of its own (the caller must supply the archive's
// header seed via WithState).
func New(v Version) *Keystream {
	switch v {
	case V1:
		return WithState(v, V1InitialState)
	case V3:
		return WithState(v, 0)
	default:
		return WithState(v, 0)
	}
}

// WithState returns a keystream for the given version seeded at an explicit
// state value.
func WithState(v Version, state uint32) *Keystream {
	switch v {
	case V1:
		return &Keystream{state: state, multiplier: 7, accumulator: 3}
	case V3:
		return &Keystream{state: state, multiplier: 9, accumulator: 3}
	default:
		return &Keystream{state: state, multiplier: 9, accumulator: 3}
	}
}

// State returns the current internal state.
func (k *Keystream) State() uint32 {
	return k.state
}

// Step advances state by one LCG iteration with 32-bit wraparound.
func (k *Keystream) Step() {
	k.state = k.state*k.multiplier + k.accumulator
}

// XorUint32 decrypts (or encrypts — the operation is symmetric) a single
// little-endian 32-bit metadata field, then steps.
func (k *Keystream) XorUint32(value uint32) uint32 {
	result := value ^ k.state
	k.Step()
	return result
}

// XorStringV1 decrypts/encrypts name bytes in place using the byte-stepped
// V1 name cipher: each byte is XORed with the low 8 bits of state, and state
// steps after every byte.
func (k *Keystream) XorStringV1(b []byte) {
	for i := range b {
		b[i] ^= byte(k.state)
		k.Step()
	}
}

// XorStringV3 decrypts/encrypts name bytes in place using the non-stepping
// V3 name cipher: byte i is XORed with byte (i mod 4) of the current state,
// and the keystream is never stepped — it stays frozen for the whole name.
func (k *Keystream) XorStringV3(b []byte) {
	for i := range b {
		shift := uint((i % 4) * 8)
		b[i] ^= byte(k.state >> shift)
	}
}

// XorContent decrypts/encrypts payload bytes in place. Byte i is XORed with
// byte (i mod 4) of the current state; state steps after every 4 bytes
// consumed. Symmetric: used identically for encrypt and decrypt.
func (k *Keystream) XorContent(b []byte) {
	for i := range b {
		shift := uint((i % 4) * 8)
		b[i] ^= byte(k.state >> shift)
		if i%4 == 3 {
			k.Step()
		}
	}
}
