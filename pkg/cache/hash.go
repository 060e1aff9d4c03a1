package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/matzehuels/graphplot/pkg/errors"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Key accumulates the inputs of an artifact into a SHA-256 digest.
// Parts are length-prefixed, so ("ab", "c") and ("a", "bc") differ.
type Key struct {
	kind string
	h    hash.Hash
}

// NewKey starts a key for artifacts of the given kind.
func NewKey(kind string) *Key {
	k := &Key{kind: kind, h: sha256.New()}
	k.write(kind)
	return k
}

func (k *Key) write(s string) {
	fmt.Fprintf(k.h, "%d:%s;", len(s), s)
}

// Add mixes a named value into the key.
func (k *Key) Add(name, value string) *Key {
	k.write(name)
	k.write(value)
	return k
}

// AddFile mixes the contents of the file at path into the key.
func (k *Key) AddFile(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "hash %s", path)
	}
	defer f.Close()

	fh := sha256.New()
	if _, err := io.Copy(fh, f); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "hash %s", path)
	}
	k.Add(name, hex.EncodeToString(fh.Sum(nil)))
	return nil
}

// String returns the key as kind:hex. It does not reset the digest.
func (k *Key) String() string {
	return k.kind + ":" + hex.EncodeToString(k.h.Sum(nil))
}
