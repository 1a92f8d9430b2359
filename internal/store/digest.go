package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/glquad/internal/quad"
)

// DomainCheckpoint is the domain prefix for checkpoint digests.
// The version suffix allows the encoding to change without colliding.
const DomainCheckpoint = "glquad/checkpoint/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest computes the content digest of a labelled checkpoint.
// Labels that differ only in Unicode normalization form produce the same digest.
func Digest(label string, cp quad.Checkpoint[float64]) (string, error) {
	canonical, err := marshalCanonical(checkpointFields(label, cp))
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return hashWithDomain(DomainCheckpoint, canonical), nil
}
