package derive

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

var (
	ErrPrivateKey      = errors.New("extended key is private, expected a public key")
	ErrNoKeychains     = errors.New("derivable key needs at least one keychain")
	ErrUnknownKeychain = errors.New("keychain not supported by this key")
)

// XpubSpec is an extended public key together with its origin. Immutable
// after construction.
type XpubSpec struct {
	origin XpubOrigin
	xpub   *hdkeychain.ExtendedKey
}

func NewXpubSpec(xpub *hdkeychain.ExtendedKey, origin XpubOrigin) (XpubSpec, error) {
	if xpub.IsPrivate() {
		return XpubSpec{}, ErrPrivateKey
	}
	return XpubSpec{origin: origin, xpub: xpub}, nil
}

func (s XpubSpec) Origin() XpubOrigin            { return s.origin }
func (s XpubSpec) Xpub() *hdkeychain.ExtendedKey { return s.xpub }

// String prints the origin prefix (omitted when empty) followed by the
// base58 xpub.
func (s XpubSpec) String() string {
	if s.origin.MasterFp == (Fingerprint{}) && len(s.origin.Derivation) == 0 {
		return s.xpub.String()
	}
	return s.origin.String() + s.xpub.String()
}

// XpubDerivable is an extended public key that can be advanced two
// non-hardened levels (keychain, then index) to produce derived keys in
// either the compressed or the x-only representation. It is the default key
// type descriptors are built from.
type XpubDerivable struct {
	spec      XpubSpec
	keychains []Keychain
}

func NewXpubDerivable(spec XpubSpec, keychains ...Keychain) (*XpubDerivable, error) {
	if len(keychains) == 0 {
		return nil, ErrNoKeychains
	}
	return &XpubDerivable{
		spec:      spec,
		keychains: append([]Keychain(nil), keychains...),
	}, nil
}

// XpubSpec exposes the extended key specification this key was built from.
func (x *XpubDerivable) XpubSpec() *XpubSpec { return &x.spec }

// DefaultKeychain returns the first declared keychain.
func (x *XpubDerivable) DefaultKeychain() Keychain { return x.keychains[0] }

// Keychains returns the declared keychains in declaration order. The
// returned slice is a copy owned by the caller.
func (x *XpubDerivable) Keychains() []Keychain {
	return append([]Keychain(nil), x.keychains...)
}

func (x *XpubDerivable) supports(keychain Keychain) bool {
	for _, k := range x.keychains {
		if k == keychain {
			return true
		}
	}
	return false
}

func (x *XpubDerivable) derive(keychain Keychain, index NormalIndex) (*btcec.PublicKey, error) {
	if !x.supports(keychain) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKeychain, keychain)
	}

	branch, err := x.spec.xpub.Derive(uint32(keychain))
	if err != nil {
		return nil, err
	}
	child, err := branch.Derive(uint32(index))
	if err != nil {
		return nil, err
	}
	return child.ECPubKey()
}

// DeriveCompr derives the child at the given coordinate in its compressed
// representation.
func (x *XpubDerivable) DeriveCompr(keychain Keychain, index NormalIndex) (CompressedPk, error) {
	pk, err := x.derive(keychain, index)
	if err != nil {
		return CompressedPk{}, err
	}
	return NewCompressedPk(pk), nil
}

// DeriveXOnly derives the child at the given coordinate in its x-only
// representation.
func (x *XpubDerivable) DeriveXOnly(keychain Keychain, index NormalIndex) (XOnlyPk, error) {
	pk, err := x.derive(keychain, index)
	if err != nil {
		return XOnlyPk{}, err
	}
	return NewXOnlyPk(pk), nil
}

// String renders the key in descriptor notation:
// "[fp/86h/1h/0h]xpub.../<0;1>/*".
func (x *XpubDerivable) String() string {
	var sb strings.Builder
	sb.WriteString(x.spec.String())
	sb.WriteByte('/')
	if len(x.keychains) == 1 {
		sb.WriteString(x.keychains[0].String())
	} else {
		sb.WriteByte('<')
		for i, k := range x.keychains {
			if i > 0 {
				sb.WriteByte(';')
			}
			sb.WriteString(k.String())
		}
		sb.WriteByte('>')
	}
	sb.WriteString("/*")
	return sb.String()
}

// ParseXpubDerivable parses the notation produced by String. A bare xpub is
// accepted and defaults to the external and internal keychains.
func ParseXpubDerivable(s string) (*XpubDerivable, error) {
	var origin XpubOrigin
	rest := s
	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			return nil, fmt.Errorf("invalid derivable key %q: unterminated origin", s)
		}
		var err error
		origin, err = ParseXpubOrigin(rest[:end+1])
		if err != nil {
			return nil, err
		}
		rest = rest[end+1:]
	}

	xpubStr, suffix, hasSuffix := strings.Cut(rest, "/")
	xpub, err := hdkeychain.NewKeyFromString(xpubStr)
	if err != nil {
		return nil, fmt.Errorf("invalid derivable key %q: %w", s, err)
	}
	spec, err := NewXpubSpec(xpub, origin)
	if err != nil {
		return nil, err
	}

	keychains := []Keychain{External, Internal}
	if hasSuffix {
		keychains, err = parseKeychainSegment(suffix)
		if err != nil {
			return nil, fmt.Errorf("invalid derivable key %q: %w", s, err)
		}
	}

	return NewXpubDerivable(spec, keychains...)
}

func parseKeychainSegment(suffix string) ([]Keychain, error) {
	segment, ok := strings.CutSuffix(suffix, "/*")
	if !ok {
		return nil, fmt.Errorf("terminal segment %q must end with /*", suffix)
	}

	var parts []string
	if strings.HasPrefix(segment, "<") && strings.HasSuffix(segment, ">") {
		parts = strings.Split(segment[1:len(segment)-1], ";")
	} else {
		parts = []string{segment}
	}

	keychains := make([]Keychain, 0, len(parts))
	for _, part := range parts {
		keychain, err := ParseKeychain(part)
		if err != nil {
			return nil, err
		}
		keychains = append(keychains, keychain)
	}
	return keychains, nil
}

func (x *XpubDerivable) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.String())
}

func (x *XpubDerivable) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseXpubDerivable(s)
	if err != nil {
		return err
	}
	*x = *parsed
	return nil
}
