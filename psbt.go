package descriptors

import (
	"github.com/btcsuite/btcd/btcutil/psbt"

	"github.com/wallet-std/descriptors/derive"
)

// Bip32Derivations converts a compressed keyset into the PSBT input/output
// derivation fields, preserving keyset order.
func Bip32Derivations(keyset *derive.ComprKeyset) []*psbt.Bip32Derivation {
	derivations := make([]*psbt.Bip32Derivation, 0, keyset.Len())
	keyset.ForEach(func(pk derive.CompressedPk, origin derive.KeyOrigin) bool {
		derivations = append(derivations, &psbt.Bip32Derivation{
			PubKey:               append([]byte(nil), pk[:]...),
			MasterKeyFingerprint: origin.MasterFp.Uint32(),
			Bip32Path:            append([]uint32(nil), origin.Derivation...),
		})
		return true
	})
	return derivations
}

// TaprootBip32Derivations converts an x-only keyset into the PSBT taproot
// derivation fields, preserving keyset order.
func TaprootBip32Derivations(keyset *derive.XOnlyKeyset) []*psbt.TaprootBip32Derivation {
	derivations := make([]*psbt.TaprootBip32Derivation, 0, keyset.Len())
	keyset.ForEach(func(pk derive.XOnlyPk, tapDeriv derive.TapDerivation) bool {
		leafHashes := make([][]byte, 0, len(tapDeriv.LeafHashes))
		for _, leafHash := range tapDeriv.LeafHashes {
			leafHashes = append(leafHashes, append([]byte(nil), leafHash[:]...))
		}
		derivations = append(derivations, &psbt.TaprootBip32Derivation{
			XOnlyPubKey:          append([]byte(nil), pk[:]...),
			LeafHashes:           leafHashes,
			MasterKeyFingerprint: tapDeriv.Origin.MasterFp.Uint32(),
			Bip32Path:            append([]uint32(nil), tapDeriv.Origin.Derivation...),
		})
		return true
	})
	return derivations
}
