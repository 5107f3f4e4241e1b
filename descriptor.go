// Package descriptors implements output descriptors: self-contained
// specifications of how a set of extended public keys deterministically
// produces spendable output scripts and the key material needed to spend
// them.
//
// Heterogeneous script constructions (currently witness-v0 pay-to-pubkey-hash
// and taproot key-spend) are driven through the single Descriptor contract
// without losing per-construction key-representation precision: compressed
// keys for segwit v0, x-only keys for taproot.
package descriptors

import (
	"github.com/wallet-std/descriptors/derive"
)

// NoVars is the auxiliary variable type of descriptors that need no
// per-descriptor values beyond their keys.
type NoVars = struct{}

// ComprKey is the key capability required by descriptors built on compressed
// public keys.
type ComprKey interface {
	derive.DeriveCompr
	derive.XpubKey
}

// XOnlyKey is the key capability required by taproot descriptors.
type XOnlyKey interface {
	derive.DeriveXOnly
	derive.XpubKey
}

// Descriptor is the polymorphic contract every concrete descriptor
// construction satisfies. All operations are read-only with respect to the
// receiver; slices and keysets are freshly built per call and owned by the
// caller.
//
// Exposing two representation-specific keyset resolvers, instead of one
// generic key lookup, lets signing code request exactly the representation
// its algorithm needs without runtime type inspection.
type Descriptor[K, V any] interface {
	derive.DeriveScripts

	// Class returns the fixed classification of this descriptor's
	// outputs.
	Class() SpkClass

	// Keys returns every raw key the descriptor was built from, in
	// construction order.
	Keys() []K

	// Vars returns auxiliary per-descriptor values beyond keys.
	Vars() []V

	// Xpubs returns the extended key specification behind each key.
	Xpubs() []derive.XpubSpec

	// ComprKeyset resolves, at the given coordinate, every compressed
	// public key the descriptor would use to build its output, mapped to
	// the origin that produced it. Descriptors that use no compressed
	// keys return an empty set, not an error.
	ComprKeyset(terminal derive.Terminal) (*derive.ComprKeyset, error)

	// XOnlyKeyset is the analogous resolution for x-only keys and their
	// taproot derivation metadata. Empty for non-taproot descriptors.
	XOnlyKeyset(terminal derive.Terminal) (*derive.XOnlyKeyset, error)
}
