package derive

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// Fingerprint is the first four bytes of the HASH160 of a master extended
// key, used to identify the root a derivation path starts from.
type Fingerprint [4]byte

func (f Fingerprint) String() string { return hex.EncodeToString(f[:]) }

// Uint32 returns the little-endian interpretation expected by the PSBT
// derivation fields.
func (f Fingerprint) Uint32() uint32 { return binary.LittleEndian.Uint32(f[:]) }

func ParseFingerprint(s string) (Fingerprint, error) {
	var f Fingerprint
	raw, err := hex.DecodeString(s)
	if err != nil {
		return f, fmt.Errorf("invalid fingerprint %q: %w", s, err)
	}
	if len(raw) != 4 {
		return f, fmt.Errorf("invalid fingerprint %q: expected 4 bytes, got %d", s, len(raw))
	}
	copy(f[:], raw)
	return f, nil
}

// HardenedIndex maps a zero-based account-level index to its hardened BIP32
// representation.
func HardenedIndex(v uint32) uint32 { return v + hdkeychain.HardenedKeyStart }

// DerivationPath is a sequence of BIP32 child indexes, hardened components
// included.
type DerivationPath []uint32

// String formats the path with one "/"-prefixed element per component and an
// "h" suffix on hardened components, e.g. "/86h/1h/0h/0/7". The empty path
// formats as the empty string.
func (p DerivationPath) String() string {
	var sb strings.Builder
	for _, child := range p {
		sb.WriteByte('/')
		if child >= hdkeychain.HardenedKeyStart {
			sb.WriteString(strconv.FormatUint(uint64(child-hdkeychain.HardenedKeyStart), 10))
			sb.WriteByte('h')
		} else {
			sb.WriteString(strconv.FormatUint(uint64(child), 10))
		}
	}
	return sb.String()
}

// Extend returns a new path with the given non-hardened components appended.
// The receiver is never modified.
func (p DerivationPath) Extend(keychain Keychain, index NormalIndex) DerivationPath {
	extended := make(DerivationPath, 0, len(p)+2)
	extended = append(extended, p...)
	extended = append(extended, uint32(keychain), uint32(index))
	return extended
}

func (p DerivationPath) Equal(other DerivationPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// ParseDerivationPath parses the format produced by String. A leading "m" and
// an apostrophe in place of "h" are accepted on input.
func ParseDerivationPath(s string) (DerivationPath, error) {
	s = strings.TrimPrefix(s, "m")
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "/") {
		return nil, fmt.Errorf("invalid derivation path %q", s)
	}

	parts := strings.Split(s[1:], "/")
	path := make(DerivationPath, 0, len(parts))
	for _, part := range parts {
		hardened := false
		if strings.HasSuffix(part, "h") || strings.HasSuffix(part, "'") {
			hardened = true
			part = part[:len(part)-1]
		}

		child, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid derivation path component %q: %w", part, err)
		}
		if child >= hdkeychain.HardenedKeyStart {
			return nil, fmt.Errorf("invalid derivation path component %q: %w", part, ErrHardenedIndex)
		}

		if hardened {
			path = append(path, HardenedIndex(uint32(child)))
		} else {
			path = append(path, uint32(child))
		}
	}
	return path, nil
}
