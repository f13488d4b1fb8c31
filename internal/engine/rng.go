package engine

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
)

// RNG is the engine's randomness source. Production code uses the
// crypto-secure implementation; a predictable source here would make
// the rare-event gates directly exploitable.
type RNG interface {
	// Float64 returns a uniform value in [0, 1)
	Float64() float64
	// Intn returns a uniform value in [0, n); n must be positive
	Intn(n int) int
}

type cryptoRNG struct{}

// NewCryptoRNG returns an RNG backed by crypto/rand
func NewCryptoRNG() RNG {
	return cryptoRNG{}
}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("engine: crypto/rand unavailable: " + err.Error())
	}
	// 53 uniform bits, the same precision math/rand exposes
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

func (cryptoRNG) Intn(n int) int {
	if n <= 0 {
		panic("engine: Intn with non-positive bound")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("engine: crypto/rand unavailable: " + err.Error())
	}
	return int(v.Int64())
}
