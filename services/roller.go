package services

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Roller is the random source behind drops, rarity rolls and name picks.
type Roller interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// LockedRoller is a math/rand generator safe for concurrent use.
type LockedRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewLockedRoller(seed int64) *LockedRoller {
	return &LockedRoller{rng: rand.New(rand.NewSource(seed))}
}

// NewSeededRoller seeds a LockedRoller from crypto/rand.
func NewSeededRoller() (*LockedRoller, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewLockedRoller(seed), nil
}

func (r *LockedRoller) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *LockedRoller) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
