package descriptors

import (
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/wallet-std/descriptors/derive"
)

// Wpkh is the witness-v0 pay-to-pubkey-hash descriptor over a single
// compressed key.
type Wpkh[K ComprKey] struct {
	key K
}

func NewWpkh[K ComprKey](key K) Wpkh[K] {
	return Wpkh[K]{key: key}
}

// Key returns the single key the descriptor was built from.
func (d Wpkh[K]) Key() K { return d.key }

func (d Wpkh[K]) Class() SpkClass { return P2WPKH }

func (d Wpkh[K]) Keys() []K { return []K{d.key} }

func (d Wpkh[K]) Vars() []NoVars { return nil }

func (d Wpkh[K]) Xpubs() []derive.XpubSpec {
	return []derive.XpubSpec{*d.key.XpubSpec()}
}

func (d Wpkh[K]) DefaultKeychain() derive.Keychain { return d.key.DefaultKeychain() }

func (d Wpkh[K]) Keychains() []derive.Keychain { return d.key.Keychains() }

// DeriveScript produces the 22-byte "OP_0 <HASH160(pk)>" scriptPubkey at the
// given coordinate.
func (d Wpkh[K]) DeriveScript(keychain derive.Keychain, index derive.NormalIndex) (derive.DerivedScript, error) {
	pk, err := d.key.DeriveCompr(keychain, index)
	if err != nil {
		return nil, err
	}

	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(btcutil.Hash160(pk[:])).
		Script()
	if err != nil {
		return nil, err
	}

	return script, nil
}

func (d Wpkh[K]) DeriveAddress(params *chaincfg.Params, keychain derive.Keychain, index derive.NormalIndex) (btcutil.Address, error) {
	script, err := d.DeriveScript(keychain, index)
	if err != nil {
		return nil, err
	}
	return script.Address(params)
}

func (d Wpkh[K]) ComprKeyset(terminal derive.Terminal) (*derive.ComprKeyset, error) {
	pk, err := d.key.DeriveCompr(terminal.Keychain, terminal.Index)
	if err != nil {
		return nil, err
	}

	keyset := derive.NewKeySet[derive.CompressedPk, derive.KeyOrigin]()
	keyset.Insert(pk, derive.NewKeyOrigin(d.key.XpubSpec().Origin(), terminal))
	return keyset, nil
}

// XOnlyKeyset is always empty: wpkh outputs never involve x-only keys.
func (d Wpkh[K]) XOnlyKeyset(derive.Terminal) (*derive.XOnlyKeyset, error) {
	return derive.NewKeySet[derive.XOnlyPk, derive.TapDerivation](), nil
}

func (d Wpkh[K]) String() string {
	return fmt.Sprintf("wpkh(%v)", d.key)
}

func (d Wpkh[K]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key K `json:"key"`
	}{Key: d.key})
}

func (d *Wpkh[K]) UnmarshalJSON(data []byte) error {
	var aux struct {
		Key K `json:"key"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.key = aux.Key
	return nil
}
