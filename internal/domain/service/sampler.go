package service

import (
	"crypto/rand"
	"math/big"
)

// Sampler draws k distinct indices uniformly from [0, n). Injected into
// the lottery so tests can fix the permutation.
type Sampler interface {
	Sample(n, k int) ([]int, error)
}

type cryptoSampler struct{}

// NewCryptoSampler returns a Sampler backed by crypto/rand.
func NewCryptoSampler() Sampler {
	return cryptoSampler{}
}

// Sample runs a partial Fisher-Yates shuffle and takes the first k
// positions, which yields a uniform sample without replacement.
func (cryptoSampler) Sample(n, k int) ([]int, error) {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	for i := 0; i < k; i++ {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(n-i)))
		if err != nil {
			return nil, err
		}
		swap := i + int(j.Int64())
		indices[i], indices[swap] = indices[swap], indices[i]
	}

	return indices[:k], nil
}
