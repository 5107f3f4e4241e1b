package descriptors

import (
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
)

// SpkClass is the closed set of output script categories a descriptor can
// produce. The declaration order is the canonical ordering used for sorting
// and comparison.
type SpkClass uint8

const (
	Bare SpkClass = iota
	P2PKH
	P2SH
	P2WPKH
	P2WSH
	P2TR
)

// ErrUnknownSpkClass is returned when parsing an unrecognized class name.
var ErrUnknownSpkClass = fmt.Errorf("unknown script pubkey class")

// DustLimit returns the minimum output value, in satoshis, below which
// relay policy treats an output of this class as non-standard. The table is
// fixed by policy and never changes at runtime.
func (c SpkClass) DustLimit() btcutil.Amount {
	switch c {
	case Bare:
		return 0
	case P2PKH:
		return 546
	case P2SH:
		return 540
	case P2WPKH:
		return 294
	case P2WSH, P2TR:
		return 330
	default:
		return 0
	}
}

func (c SpkClass) String() string {
	switch c {
	case Bare:
		return "bare"
	case P2PKH:
		return "p2pkh"
	case P2SH:
		return "p2sh"
	case P2WPKH:
		return "p2wpkh"
	case P2WSH:
		return "p2wsh"
	case P2TR:
		return "p2tr"
	default:
		return fmt.Sprintf("spkclass(%d)", uint8(c))
	}
}

func ParseSpkClass(s string) (SpkClass, error) {
	switch s {
	case "bare":
		return Bare, nil
	case "p2pkh":
		return P2PKH, nil
	case "p2sh":
		return P2SH, nil
	case "p2wpkh":
		return P2WPKH, nil
	case "p2wsh":
		return P2WSH, nil
	case "p2tr":
		return P2TR, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSpkClass, s)
	}
}

// ScriptClass maps the class onto btcd's standard script classification.
func (c SpkClass) ScriptClass() txscript.ScriptClass {
	switch c {
	case P2PKH:
		return txscript.PubKeyHashTy
	case P2SH:
		return txscript.ScriptHashTy
	case P2WPKH:
		return txscript.WitnessV0PubKeyHashTy
	case P2WSH:
		return txscript.WitnessV0ScriptHashTy
	case P2TR:
		return txscript.WitnessV1TaprootTy
	default:
		return txscript.NonStandardTy
	}
}

func (c SpkClass) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *SpkClass) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseSpkClass(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
