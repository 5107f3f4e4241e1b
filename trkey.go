package descriptors

import (
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/wallet-std/descriptors/derive"
)

// TrKey is the taproot key-spend descriptor over a single x-only internal
// key with no script tree (BIP86).
type TrKey[K XOnlyKey] struct {
	internalKey K
}

func NewTrKey[K XOnlyKey](internalKey K) TrKey[K] {
	return TrKey[K]{internalKey: internalKey}
}

// InternalKey returns the taproot internal key the descriptor was built
// from.
func (d TrKey[K]) InternalKey() K { return d.internalKey }

func (d TrKey[K]) Class() SpkClass { return P2TR }

func (d TrKey[K]) Keys() []K { return []K{d.internalKey} }

func (d TrKey[K]) Vars() []NoVars { return nil }

func (d TrKey[K]) Xpubs() []derive.XpubSpec {
	return []derive.XpubSpec{*d.internalKey.XpubSpec()}
}

func (d TrKey[K]) DefaultKeychain() derive.Keychain { return d.internalKey.DefaultKeychain() }

func (d TrKey[K]) Keychains() []derive.Keychain { return d.internalKey.Keychains() }

// DeriveScript produces the 34-byte "OP_1 <output key>" scriptPubkey, with
// the output key tweaked from the derived internal key per BIP86.
func (d TrKey[K]) DeriveScript(keychain derive.Keychain, index derive.NormalIndex) (derive.DerivedScript, error) {
	xonly, err := d.internalKey.DeriveXOnly(keychain, index)
	if err != nil {
		return nil, err
	}
	internal, err := xonly.PubKey()
	if err != nil {
		return nil, err
	}

	outputKey := txscript.ComputeTaprootKeyNoScript(internal)
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_1).
		AddData(schnorr.SerializePubKey(outputKey)).
		Script()
	if err != nil {
		return nil, err
	}

	return script, nil
}

func (d TrKey[K]) DeriveAddress(params *chaincfg.Params, keychain derive.Keychain, index derive.NormalIndex) (btcutil.Address, error) {
	script, err := d.DeriveScript(keychain, index)
	if err != nil {
		return nil, err
	}
	return script.Address(params)
}

// ComprKeyset is always empty: taproot outputs never involve compressed
// keys.
func (d TrKey[K]) ComprKeyset(derive.Terminal) (*derive.ComprKeyset, error) {
	return derive.NewKeySet[derive.CompressedPk, derive.KeyOrigin](), nil
}

func (d TrKey[K]) XOnlyKeyset(terminal derive.Terminal) (*derive.XOnlyKeyset, error) {
	xonly, err := d.internalKey.DeriveXOnly(terminal.Keychain, terminal.Index)
	if err != nil {
		return nil, err
	}

	keyset := derive.NewKeySet[derive.XOnlyPk, derive.TapDerivation]()
	keyset.Insert(xonly, derive.TapDerivationWithInternalKey(
		d.internalKey.XpubSpec().Origin(), terminal,
	))
	return keyset, nil
}

func (d TrKey[K]) String() string {
	return fmt.Sprintf("tr(%v)", d.internalKey)
}

func (d TrKey[K]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		InternalKey K `json:"internalKey"`
	}{InternalKey: d.internalKey})
}

func (d *TrKey[K]) UnmarshalJSON(data []byte) error {
	var aux struct {
		InternalKey K `json:"internalKey"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.internalKey = aux.InternalKey
	return nil
}
