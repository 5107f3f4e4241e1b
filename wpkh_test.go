package descriptors_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/require"

	descriptors "github.com/wallet-std/descriptors"
	"github.com/wallet-std/descriptors/derive"
)

const (
	testXpub = "xpub6DiYrfRwNnjeX4vHsWMajJVFKrbEEnu8gAW9vDuQzgTWEsEHE16sGWeXXUV1LBWQE1yCTmeprSNcqZ3W74hqVdgDbtYHUv3eM4W2TEUhpan"

	wpkhKeyStr  = "[dc567276/84h/0h/0h]" + testXpub + "/<0;1>/*"
	trKeyStr    = "[dc567276/86h/0h/0h]" + testXpub + "/<0;1>/*"
	testWpkhStr = "wpkh(" + wpkhKeyStr + ")"
	testTrStr   = "tr(" + trKeyStr + ")"
)

func wpkhKey(t *testing.T) *derive.XpubDerivable {
	t.Helper()
	key, err := derive.ParseXpubDerivable(wpkhKeyStr)
	require.NoError(t, err)
	return key
}

func trKey(t *testing.T) *derive.XpubDerivable {
	t.Helper()
	key, err := derive.ParseXpubDerivable(trKeyStr)
	require.NoError(t, err)
	return key
}

func TestWpkhClassAndKeys(t *testing.T) {
	key := wpkhKey(t)
	wpkh := descriptors.NewWpkh(key)

	require.Equal(t, descriptors.P2WPKH, wpkh.Class())
	require.Equal(t, btcutil.Amount(294), wpkh.Class().DustLimit())

	keys := wpkh.Keys()
	require.Len(t, keys, 1)
	require.Same(t, key, keys[0])

	require.Empty(t, wpkh.Vars())

	xpubs := wpkh.Xpubs()
	require.Len(t, xpubs, 1)
	require.Equal(t, key.XpubSpec().String(), xpubs[0].String())

	require.Equal(t, derive.External, wpkh.DefaultKeychain())
	require.Equal(t, []derive.Keychain{derive.External, derive.Internal}, wpkh.Keychains())

	require.Equal(t, testWpkhStr, wpkh.String())
}

func TestWpkhDeriveScript(t *testing.T) {
	wpkh := descriptors.NewWpkh(wpkhKey(t))

	script, err := wpkh.DeriveScript(derive.External, 0)
	require.NoError(t, err)

	// OP_0 OP_DATA_20 <20 byte key hash>.
	require.Len(t, []byte(script), 22)
	require.Equal(t, byte(txscript.OP_0), script[0])
	require.Equal(t, txscript.WitnessV0PubKeyHashTy, script.ScriptClass())

	// Determinism: bit-identical on repeated calls.
	again, err := wpkh.DeriveScript(derive.External, 0)
	require.NoError(t, err)
	require.Equal(t, script, again)

	// Distinct coordinates produce distinct scripts.
	change, err := wpkh.DeriveScript(derive.Internal, 0)
	require.NoError(t, err)
	require.NotEqual(t, script, change)
}

func TestWpkhDeriveAddress(t *testing.T) {
	wpkh := descriptors.NewWpkh(wpkhKey(t))

	addr, err := wpkh.DeriveAddress(&chaincfg.MainNetParams, derive.External, 1)
	require.NoError(t, err)
	require.IsType(t, &btcutil.AddressWitnessPubKeyHash{}, addr)

	script, err := wpkh.DeriveScript(derive.External, 1)
	require.NoError(t, err)
	fromScript, err := script.Address(&chaincfg.MainNetParams)
	require.NoError(t, err)
	require.Equal(t, fromScript.EncodeAddress(), addr.EncodeAddress())
}

func TestWpkhComprKeyset(t *testing.T) {
	key := wpkhKey(t)
	wpkh := descriptors.NewWpkh(key)
	terminal := derive.NewTerminal(derive.Internal, 9)

	keyset, err := wpkh.ComprKeyset(terminal)
	require.NoError(t, err)
	require.Equal(t, 1, keyset.Len())

	expectedPk, err := key.DeriveCompr(terminal.Keychain, terminal.Index)
	require.NoError(t, err)

	origin, ok := keyset.Get(expectedPk)
	require.True(t, ok)
	require.Equal(t, key.XpubSpec().Origin().MasterFp, origin.MasterFp)
	require.Equal(t, "/84h/0h/0h/1/9", origin.Derivation.String())

	// Fresh allocation per call, same contents.
	second, err := wpkh.ComprKeyset(terminal)
	require.NoError(t, err)
	require.NotSame(t, keyset, second)
	require.True(t, keyset.Equal(second, derive.KeyOrigin.Equal))
}

func TestWpkhXOnlyKeysetEmpty(t *testing.T) {
	wpkh := descriptors.NewWpkh(wpkhKey(t))

	for _, terminal := range []derive.Terminal{
		derive.NewTerminal(derive.External, 0),
		derive.NewTerminal(derive.Internal, 100),
	} {
		keyset, err := wpkh.XOnlyKeyset(terminal)
		require.NoError(t, err)
		require.Equal(t, 0, keyset.Len())
	}
}

func TestWpkhUnknownKeychainSurfaces(t *testing.T) {
	key, err := derive.ParseXpubDerivable(testXpub + "/0/*")
	require.NoError(t, err)
	wpkh := descriptors.NewWpkh(key)

	_, err = wpkh.DeriveScript(derive.Internal, 0)
	require.ErrorIs(t, err, derive.ErrUnknownKeychain)
	_, err = wpkh.ComprKeyset(derive.NewTerminal(derive.Internal, 0))
	require.ErrorIs(t, err, derive.ErrUnknownKeychain)
}
