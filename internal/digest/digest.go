// Package digest computes the optional per-part content digests and renders
// them in a multibase-prefixed text form.
package digest

import (
	"encoding/base32"
	"fmt"
	"hash"

	"github.com/anjor/textsplit/internal/util/text"
	"github.com/minio/sha256-simd"
	"github.com/multiformats/go-base36"
	"github.com/twmb/murmur3"
	"golang.org/x/crypto/blake2b"
)

type hasher struct {
	maker func() hash.Hash
}

// AvailableHashers maps a digest name to its constructor. "none" disables
// digesting altogether.
var AvailableHashers = map[string]hasher{
	"none": {},
	"sha2-256": {
		maker: sha256.New,
	},
	"murmur3-128": {
		maker: func() hash.Hash { return murmur3.New128() },
	},
	"blake2b-256": {
		maker: func() hash.Hash {
			h, _ := blake2b.New256(nil) // errors only on an oversized key
			return h
		},
	},
}

var b32Encoder = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// Digester hashes whole parts. A nil *Digester is valid and yields empty
// digests.
type Digester struct {
	name      string
	maker     func() hash.Hash
	multibase string
}

// New returns nil without an error for the "none" digest.
func New(name, multibase string) (*Digester, error) {

	h, exists := AvailableHashers[name]
	if !exists {
		return nil, fmt.Errorf(
			"digest '%s' is not valid. Available digest names are %s",
			name,
			text.AvailableMapKeys(AvailableHashers),
		)
	}

	if multibase != "base32" && multibase != "base36" {
		return nil, fmt.Errorf("unsupported digest multibase '%s'", multibase)
	}

	if h.maker == nil {
		return nil, nil
	}

	return &Digester{
		name:      name,
		maker:     h.maker,
		multibase: multibase,
	}, nil
}

func (d *Digester) Name() string {
	if d == nil {
		return "none"
	}
	return d.name
}

// Sum returns the formatted digest of b
func (d *Digester) Sum(b []byte) string {
	if d == nil {
		return ""
	}

	h := d.Hash()
	h.Write(b) //nolint:errcheck
	return d.Format(h.Sum(nil))
}

// Hash returns a fresh streaming hasher, to be rendered via Format
func (d *Digester) Hash() hash.Hash { return d.maker() }

func (d *Digester) Format(raw []byte) string {
	if d.multibase == "base32" {
		return "b" + b32Encoder.EncodeToString(raw)
	}
	return "k" + base36.EncodeToStringLc(raw)
}
