package descriptors_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/require"

	descriptors "github.com/wallet-std/descriptors"
	"github.com/wallet-std/descriptors/derive"
)

func TestTrKeyClassAndKeys(t *testing.T) {
	key := trKey(t)
	tr := descriptors.NewTrKey(key)

	require.Equal(t, descriptors.P2TR, tr.Class())
	require.Equal(t, btcutil.Amount(330), tr.Class().DustLimit())

	keys := tr.Keys()
	require.Len(t, keys, 1)
	require.Same(t, key, keys[0])
	require.Same(t, key, tr.InternalKey())

	require.Empty(t, tr.Vars())

	xpubs := tr.Xpubs()
	require.Len(t, xpubs, 1)
	require.Equal(t, key.XpubSpec().String(), xpubs[0].String())

	require.Equal(t, testTrStr, tr.String())
}

func TestTrKeyDeriveScript(t *testing.T) {
	key := trKey(t)
	tr := descriptors.NewTrKey(key)

	script, err := tr.DeriveScript(derive.External, 0)
	require.NoError(t, err)

	// OP_1 OP_DATA_32 <32 byte output key>.
	require.Len(t, []byte(script), 34)
	require.Equal(t, byte(txscript.OP_1), script[0])
	require.Equal(t, txscript.WitnessV1TaprootTy, script.ScriptClass())

	// The output key is the BIP86 tweak of the derived internal key, not
	// the internal key itself.
	internal, err := key.DeriveXOnly(derive.External, 0)
	require.NoError(t, err)
	internalPk, err := internal.PubKey()
	require.NoError(t, err)
	outputKey := txscript.ComputeTaprootKeyNoScript(internalPk)
	require.Equal(t, schnorr.SerializePubKey(outputKey), []byte(script[2:]))
	require.NotEqual(t, internal[:], []byte(script[2:]))

	again, err := tr.DeriveScript(derive.External, 0)
	require.NoError(t, err)
	require.Equal(t, script, again)
}

func TestTrKeyDeriveAddress(t *testing.T) {
	tr := descriptors.NewTrKey(trKey(t))

	addr, err := tr.DeriveAddress(&chaincfg.MainNetParams, derive.External, 2)
	require.NoError(t, err)
	require.IsType(t, &btcutil.AddressTaproot{}, addr)

	script, err := tr.DeriveScript(derive.External, 2)
	require.NoError(t, err)
	fromScript, err := script.Address(&chaincfg.MainNetParams)
	require.NoError(t, err)
	require.Equal(t, fromScript.EncodeAddress(), addr.EncodeAddress())
}

func TestTrKeyXOnlyKeyset(t *testing.T) {
	key := trKey(t)
	tr := descriptors.NewTrKey(key)
	terminal := derive.NewTerminal(derive.External, 4)

	keyset, err := tr.XOnlyKeyset(terminal)
	require.NoError(t, err)
	require.Equal(t, 1, keyset.Len())

	expectedPk, err := key.DeriveXOnly(terminal.Keychain, terminal.Index)
	require.NoError(t, err)

	tapDeriv, ok := keyset.Get(expectedPk)
	require.True(t, ok)
	require.Empty(t, tapDeriv.LeafHashes)
	require.Equal(t, key.XpubSpec().Origin().MasterFp, tapDeriv.Origin.MasterFp)
	require.Equal(t, "/86h/0h/0h/0/4", tapDeriv.Origin.Derivation.String())

	second, err := tr.XOnlyKeyset(terminal)
	require.NoError(t, err)
	require.NotSame(t, keyset, second)
	require.True(t, keyset.Equal(second, derive.TapDerivation.Equal))
}

func TestTrKeyComprKeysetEmpty(t *testing.T) {
	tr := descriptors.NewTrKey(trKey(t))

	for _, terminal := range []derive.Terminal{
		derive.NewTerminal(derive.External, 0),
		derive.NewTerminal(derive.Internal, 55),
	} {
		keyset, err := tr.ComprKeyset(terminal)
		require.NoError(t, err)
		require.Equal(t, 0, keyset.Len())
	}
}
