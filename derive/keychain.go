package derive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

var (
	ErrHardenedIndex   = errors.New("index out of the non-hardened range")
	ErrInvalidTerminal = errors.New("invalid terminal")
)

// Keychain is a named derivation branch within a descriptor. Branch numbers
// follow BIP44: 0 for receiving addresses, 1 for change.
type Keychain uint8

const (
	// External is the branch used for receiving addresses.
	External Keychain = 0

	// Internal is the branch used for change addresses.
	Internal Keychain = 1
)

func (k Keychain) String() string { return strconv.Itoa(int(k)) }

func ParseKeychain(s string) (Keychain, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid keychain %q: %w", s, err)
	}
	return Keychain(v), nil
}

// NormalIndex is a non-hardened BIP32 child index.
type NormalIndex uint32

// NewNormalIndex checks that v is below the hardened key boundary.
func NewNormalIndex(v uint32) (NormalIndex, error) {
	if v >= hdkeychain.HardenedKeyStart {
		return 0, ErrHardenedIndex
	}
	return NormalIndex(v), nil
}

func (i NormalIndex) String() string { return strconv.FormatUint(uint64(i), 10) }

func ParseNormalIndex(s string) (NormalIndex, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	return NewNormalIndex(uint32(v))
}

// Terminal is a concrete (keychain, index) derivation coordinate identifying
// one derived key or script.
type Terminal struct {
	Keychain Keychain
	Index    NormalIndex
}

func NewTerminal(keychain Keychain, index NormalIndex) Terminal {
	return Terminal{Keychain: keychain, Index: index}
}

func (t Terminal) String() string {
	return fmt.Sprintf("%s/%s", t.Keychain, t.Index)
}

// Less orders terminals by keychain first, then index.
func (t Terminal) Less(other Terminal) bool {
	if t.Keychain != other.Keychain {
		return t.Keychain < other.Keychain
	}
	return t.Index < other.Index
}

func ParseTerminal(s string) (Terminal, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Terminal{}, fmt.Errorf("%w: %q", ErrInvalidTerminal, s)
	}

	keychain, err := ParseKeychain(parts[0])
	if err != nil {
		return Terminal{}, fmt.Errorf("%w: %q", ErrInvalidTerminal, s)
	}

	index, err := ParseNormalIndex(parts[1])
	if err != nil {
		return Terminal{}, fmt.Errorf("%w: %q", ErrInvalidTerminal, s)
	}

	return Terminal{Keychain: keychain, Index: index}, nil
}
