package derive

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// XpubOrigin records where an extended public key sits in the tree of its
// master key: the master fingerprint plus the (usually all-hardened) path
// from the master down to the xpub itself.
type XpubOrigin struct {
	MasterFp   Fingerprint
	Derivation DerivationPath
}

// String formats the origin the way output descriptors do,
// e.g. "[dc567276/86h/1h/0h]".
func (o XpubOrigin) String() string {
	return fmt.Sprintf("[%s%s]", o.MasterFp, o.Derivation)
}

func (o XpubOrigin) Equal(other XpubOrigin) bool {
	return o.MasterFp == other.MasterFp && o.Derivation.Equal(other.Derivation)
}

// ParseXpubOrigin parses a bracketed origin prefix.
func ParseXpubOrigin(s string) (XpubOrigin, error) {
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return XpubOrigin{}, fmt.Errorf("invalid key origin %q", s)
	}
	content := s[1 : len(s)-1]

	fpStr, pathStr, _ := strings.Cut(content, "/")
	fp, err := ParseFingerprint(fpStr)
	if err != nil {
		return XpubOrigin{}, err
	}

	var path DerivationPath
	if pathStr != "" {
		path, err = ParseDerivationPath("/" + pathStr)
		if err != nil {
			return XpubOrigin{}, err
		}
	}

	return XpubOrigin{MasterFp: fp, Derivation: path}, nil
}

// KeyOrigin records the full path from a master key down to one derived
// public key. It is what ends up in the PSBT BIP32 derivation fields so that
// a signer can re-derive the matching private key.
type KeyOrigin struct {
	MasterFp   Fingerprint
	Derivation DerivationPath
}

// NewKeyOrigin extends an xpub origin by the two terminal components.
func NewKeyOrigin(origin XpubOrigin, terminal Terminal) KeyOrigin {
	return KeyOrigin{
		MasterFp:   origin.MasterFp,
		Derivation: origin.Derivation.Extend(terminal.Keychain, terminal.Index),
	}
}

func (o KeyOrigin) String() string {
	return fmt.Sprintf("[%s%s]", o.MasterFp, o.Derivation)
}

func (o KeyOrigin) Equal(other KeyOrigin) bool {
	return o.MasterFp == other.MasterFp && o.Derivation.Equal(other.Derivation)
}

// TapDerivation carries the taproot-specific derivation metadata for an
// x-only key: its origin plus the hashes of the script leaves the key
// participates in. A BIP86 key-spend has no leaves.
type TapDerivation struct {
	Origin     KeyOrigin
	LeafHashes []chainhash.Hash
}

// TapDerivationWithInternalKey builds the metadata for a pure key-spend
// internal key, with an empty leaf-hash set.
func TapDerivationWithInternalKey(origin XpubOrigin, terminal Terminal) TapDerivation {
	return TapDerivation{Origin: NewKeyOrigin(origin, terminal)}
}

func (d TapDerivation) Equal(other TapDerivation) bool {
	if !d.Origin.Equal(other.Origin) {
		return false
	}
	if len(d.LeafHashes) != len(other.LeafHashes) {
		return false
	}
	for i := range d.LeafHashes {
		if d.LeafHashes[i] != other.LeafHashes[i] {
			return false
		}
	}
	return true
}
