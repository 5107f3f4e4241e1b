// Package derive models deterministic two-level key derivation for wallet
// descriptors: keychains, non-hardened indexes, derived key representations
// and the origin metadata a signer later needs to reconstruct paths.
//
// The package never performs elliptic-curve arithmetic itself; xpub child
// derivation is delegated to btcutil/hdkeychain.
package derive

import (
	"errors"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// ErrNoAddress is returned when a script has no single address form on the
// requested network.
var ErrNoAddress = errors.New("script has no address form")

// KeychainSet is the part of the derivation capability that declares which
// keychains a value supports.
type KeychainSet interface {
	// DefaultKeychain returns the keychain used when the caller does not
	// care about the branch.
	DefaultKeychain() Keychain

	// Keychains returns every supported keychain in declaration order.
	Keychains() []Keychain
}

// DeriveCompr is the capability of advancing a key two non-hardened levels
// to a compressed public key. Implementations must be deterministic and must
// not mutate the receiver; the only errors returned are those of the
// underlying extended-key collaborator (including rejection of keychains the
// receiver does not support).
type DeriveCompr interface {
	KeychainSet

	DeriveCompr(keychain Keychain, index NormalIndex) (CompressedPk, error)
}

// DeriveXOnly is the analogous capability for the x-only representation
// required by taproot outputs. Having a distinct method with a distinct
// return type means taproot code can never be handed a compressed key by
// mistake.
type DeriveXOnly interface {
	KeychainSet

	DeriveXOnly(keychain Keychain, index NormalIndex) (XOnlyPk, error)
}

// XpubKey is implemented by key types built from an extended public key
// specification.
type XpubKey interface {
	XpubSpec() *XpubSpec
}

// DeriveScripts is the capability of producing concrete output scripts, and
// addresses for them, at a derivation coordinate. Descriptors implement it.
type DeriveScripts interface {
	KeychainSet

	DeriveScript(keychain Keychain, index NormalIndex) (DerivedScript, error)

	DeriveAddress(params *chaincfg.Params, keychain Keychain, index NormalIndex) (btcutil.Address, error)
}

// DerivedScript is a fully materialized scriptPubkey.
type DerivedScript []byte

// ScriptClass classifies the script using btcd's standard script
// recognition.
func (s DerivedScript) ScriptClass() txscript.ScriptClass {
	return txscript.GetScriptClass(s)
}

// Address encodes the script for the given network. Scripts without exactly
// one address form yield ErrNoAddress.
func (s DerivedScript) Address(params *chaincfg.Params) (btcutil.Address, error) {
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(s, params)
	if err != nil {
		return nil, err
	}
	if len(addrs) != 1 {
		return nil, ErrNoAddress
	}
	return addrs[0], nil
}
