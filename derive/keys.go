package derive

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// CompressedPk is a public key in its 33-byte compressed SEC encoding. The
// value form makes keys directly usable as map keys.
type CompressedPk [33]byte

func NewCompressedPk(pk *secp256k1.PublicKey) CompressedPk {
	var compr CompressedPk
	copy(compr[:], pk.SerializeCompressed())
	return compr
}

func ParseCompressedPk(raw []byte) (CompressedPk, error) {
	var compr CompressedPk
	if len(raw) != len(compr) {
		return compr, fmt.Errorf("invalid compressed pubkey length %d", len(raw))
	}
	if _, err := secp256k1.ParsePubKey(raw); err != nil {
		return compr, err
	}
	copy(compr[:], raw)
	return compr, nil
}

// PubKey decodes the compressed encoding back into a curve point.
func (pk CompressedPk) PubKey() (*secp256k1.PublicKey, error) {
	return secp256k1.ParsePubKey(pk[:])
}

// XOnly drops the parity byte, producing the BIP340 representation.
func (pk CompressedPk) XOnly() XOnlyPk {
	var xonly XOnlyPk
	copy(xonly[:], pk[1:])
	return xonly
}

func (pk CompressedPk) String() string { return hex.EncodeToString(pk[:]) }

func (pk CompressedPk) MarshalJSON() ([]byte, error) {
	return json.Marshal(pk.String())
}

func (pk *CompressedPk) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	parsed, err := ParseCompressedPk(raw)
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}

// XOnlyPk is a public key in its 32-byte BIP340 x-only encoding.
type XOnlyPk [32]byte

func NewXOnlyPk(pk *secp256k1.PublicKey) XOnlyPk {
	var xonly XOnlyPk
	copy(xonly[:], schnorr.SerializePubKey(pk))
	return xonly
}

func ParseXOnlyPk(raw []byte) (XOnlyPk, error) {
	var xonly XOnlyPk
	if len(raw) != len(xonly) {
		return xonly, fmt.Errorf("invalid x-only pubkey length %d", len(raw))
	}
	if _, err := schnorr.ParsePubKey(raw); err != nil {
		return xonly, err
	}
	copy(xonly[:], raw)
	return xonly, nil
}

// PubKey lifts the x-only encoding back to the even-parity curve point.
func (pk XOnlyPk) PubKey() (*secp256k1.PublicKey, error) {
	return schnorr.ParsePubKey(pk[:])
}

func (pk XOnlyPk) String() string { return hex.EncodeToString(pk[:]) }

func (pk XOnlyPk) MarshalJSON() ([]byte, error) {
	return json.Marshal(pk.String())
}

func (pk *XOnlyPk) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	parsed, err := ParseXOnlyPk(raw)
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}
