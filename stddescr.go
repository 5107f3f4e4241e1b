package descriptors

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/wallet-std/descriptors/derive"
)

// ErrEmptyDescr is returned by operations on a zero-value StdDescr, which
// holds no variant. Values built through the constructors always hold
// exactly one.
var ErrEmptyDescr = errors.New("empty standard descriptor")

// StdDescr is the closed union over the standard descriptor constructions,
// instantiated with the default XpubDerivable key type. Exactly one variant
// is active per value; every operation dispatches to it. The variant set is
// deliberately closed: new script standards are added as new variants here,
// not through open-ended extension.
type StdDescr struct {
	wpkh  *Wpkh[*derive.XpubDerivable]
	trKey *TrKey[*derive.XpubDerivable]
}

var (
	_ Descriptor[*derive.XpubDerivable, NoVars] = StdDescr{}
	_ derive.DeriveScripts                      = StdDescr{}
)

// NewWpkhDescr wraps a wpkh descriptor into the union.
func NewWpkhDescr(d Wpkh[*derive.XpubDerivable]) StdDescr {
	return StdDescr{wpkh: &d}
}

// NewTrKeyDescr wraps a taproot key-spend descriptor into the union.
func NewTrKeyDescr(d TrKey[*derive.XpubDerivable]) StdDescr {
	return StdDescr{trKey: &d}
}

// Wpkh returns the inner wpkh descriptor when that variant is active.
func (s StdDescr) Wpkh() (Wpkh[*derive.XpubDerivable], bool) {
	if s.wpkh == nil {
		return Wpkh[*derive.XpubDerivable]{}, false
	}
	return *s.wpkh, true
}

// TrKey returns the inner taproot descriptor when that variant is active.
func (s StdDescr) TrKey() (TrKey[*derive.XpubDerivable], bool) {
	if s.trKey == nil {
		return TrKey[*derive.XpubDerivable]{}, false
	}
	return *s.trKey, true
}

func (s StdDescr) Class() SpkClass {
	switch {
	case s.wpkh != nil:
		return s.wpkh.Class()
	case s.trKey != nil:
		return s.trKey.Class()
	}
	return 0
}

func (s StdDescr) Keys() []*derive.XpubDerivable {
	switch {
	case s.wpkh != nil:
		return s.wpkh.Keys()
	case s.trKey != nil:
		return s.trKey.Keys()
	}
	return nil
}

func (s StdDescr) Vars() []NoVars { return nil }

func (s StdDescr) Xpubs() []derive.XpubSpec {
	switch {
	case s.wpkh != nil:
		return s.wpkh.Xpubs()
	case s.trKey != nil:
		return s.trKey.Xpubs()
	}
	return nil
}

func (s StdDescr) DefaultKeychain() derive.Keychain {
	switch {
	case s.wpkh != nil:
		return s.wpkh.DefaultKeychain()
	case s.trKey != nil:
		return s.trKey.DefaultKeychain()
	}
	return 0
}

func (s StdDescr) Keychains() []derive.Keychain {
	switch {
	case s.wpkh != nil:
		return s.wpkh.Keychains()
	case s.trKey != nil:
		return s.trKey.Keychains()
	}
	return nil
}

func (s StdDescr) DeriveScript(keychain derive.Keychain, index derive.NormalIndex) (derive.DerivedScript, error) {
	switch {
	case s.wpkh != nil:
		return s.wpkh.DeriveScript(keychain, index)
	case s.trKey != nil:
		return s.trKey.DeriveScript(keychain, index)
	}
	return nil, ErrEmptyDescr
}

func (s StdDescr) DeriveAddress(params *chaincfg.Params, keychain derive.Keychain, index derive.NormalIndex) (btcutil.Address, error) {
	switch {
	case s.wpkh != nil:
		return s.wpkh.DeriveAddress(params, keychain, index)
	case s.trKey != nil:
		return s.trKey.DeriveAddress(params, keychain, index)
	}
	return nil, ErrEmptyDescr
}

func (s StdDescr) ComprKeyset(terminal derive.Terminal) (*derive.ComprKeyset, error) {
	switch {
	case s.wpkh != nil:
		return s.wpkh.ComprKeyset(terminal)
	case s.trKey != nil:
		return s.trKey.ComprKeyset(terminal)
	}
	return nil, ErrEmptyDescr
}

func (s StdDescr) XOnlyKeyset(terminal derive.Terminal) (*derive.XOnlyKeyset, error) {
	switch {
	case s.wpkh != nil:
		return s.wpkh.XOnlyKeyset(terminal)
	case s.trKey != nil:
		return s.trKey.XOnlyKeyset(terminal)
	}
	return nil, ErrEmptyDescr
}

func (s StdDescr) String() string {
	switch {
	case s.wpkh != nil:
		return s.wpkh.String()
	case s.trKey != nil:
		return s.trKey.String()
	}
	return ""
}

type stdDescrJSON struct {
	Wpkh  *Wpkh[*derive.XpubDerivable]  `json:"wpkh,omitempty"`
	TrKey *TrKey[*derive.XpubDerivable] `json:"trKey,omitempty"`
}

func (s StdDescr) MarshalJSON() ([]byte, error) {
	if s.wpkh == nil && s.trKey == nil {
		return nil, ErrEmptyDescr
	}
	return json.Marshal(stdDescrJSON{Wpkh: s.wpkh, TrKey: s.trKey})
}

func (s *StdDescr) UnmarshalJSON(data []byte) error {
	var aux stdDescrJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&aux); err != nil {
		return err
	}

	switch {
	case aux.Wpkh != nil && aux.TrKey == nil:
		if aux.Wpkh.key == nil {
			return errors.New("wpkh descriptor is missing its key")
		}
		s.wpkh, s.trKey = aux.Wpkh, nil
	case aux.TrKey != nil && aux.Wpkh == nil:
		if aux.TrKey.internalKey == nil {
			return errors.New("tr descriptor is missing its internal key")
		}
		s.wpkh, s.trKey = nil, aux.TrKey
	default:
		return errors.New("standard descriptor must hold exactly one variant")
	}
	return nil
}
