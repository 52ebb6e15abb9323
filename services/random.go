package services

import (
	"crypto/rand"
	"io"
	"log"
	"math"
	"math/big"
	mrand "math/rand"
)

// RandomSource yields floats in [0, 1).
type RandomSource interface {
	Float64() float64
}

// SafeRand draws from crypto/rand so no seeding is required.
type SafeRand struct {
	reader io.Reader
}

func NewSafeRand() *SafeRand {
	return &SafeRand{reader: rand.Reader}
}

func (s *SafeRand) Float64() float64 {
	reader := s.reader
	if reader == nil {
		reader = rand.Reader
	}

	max := new(big.Int).Lsh(big.NewInt(1), 53)
	value, err := rand.Int(reader, max)
	if err != nil {
		log.Printf("⚠️  crypto/rand failed: %v — using math/rand", err)
		return mrand.Float64()
	}
	return float64(value.Int64()) / math.Pow(2, 53)
}
