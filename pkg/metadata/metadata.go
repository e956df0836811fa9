// Package metadata records facts about written output files.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

// Digest is an io.Writer that passes data through to another writer while
// hashing it.
type Digest struct {
	w     io.Writer
	h     hash.Hash
	bytes int64
}

// NewDigest wraps w.
func NewDigest(w io.Writer) *Digest {
	return &Digest{w: w, h: sha256.New()}
}

func (d *Digest) Write(p []byte) (int, error) {
	n, err := d.w.Write(p)
	d.h.Write(p[:n])
	d.bytes += int64(n)

	return n, err
}

// Hash returns the hex-encoded SHA-256 of everything written so far.
func (d *Digest) Hash() string {
	return hex.EncodeToString(d.h.Sum(nil))
}

// Bytes returns the number of bytes written so far.
func (d *Digest) Bytes() int64 {
	return d.bytes
}
