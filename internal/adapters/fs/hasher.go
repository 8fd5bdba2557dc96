package fs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/cjsguard/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes XXHash digests of source file content.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashContent returns the hex-encoded XXHash of data.
func (h *Hasher) HashContent(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
