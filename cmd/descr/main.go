package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	descriptors "github.com/wallet-std/descriptors"
	"github.com/wallet-std/descriptors/derive"
)

var version = "dev"

var (
	networkFlag = cli.StringFlag{
		Name:  "network",
		Usage: "network to encode addresses for (mainnet, testnet, signet, regtest)",
		Value: "mainnet",
	}
	keychainFlag = cli.UintFlag{
		Name:  "keychain",
		Usage: "keychain (branch) to derive on; defaults to the descriptor's default keychain",
	}
	fromFlag = cli.UintFlag{
		Name:  "from",
		Usage: "first derivation index",
		Value: 0,
	}
	toFlag = cli.UintFlag{
		Name:  "to",
		Usage: "last derivation index (inclusive)",
		Value: 9,
	}
)

var (
	inspectCommand = cli.Command{
		Name:      "inspect",
		Usage:     "Show the class, dust limit, keychains and xpubs of a descriptor",
		ArgsUsage: "<descriptor>",
		Action:    inspectAction,
	}

	deriveCommand = cli.Command{
		Name:      "derive",
		Usage:     "Derive scripts and addresses over an index range",
		ArgsUsage: "<descriptor>",
		Action:    deriveAction,
		Flags:     []cli.Flag{&networkFlag, &keychainFlag, &fromFlag, &toFlag},
	}

	keysetCommand = cli.Command{
		Name:      "keyset",
		Usage:     "Show the signing keys and origins at a terminal, e.g. 0/5",
		ArgsUsage: "<descriptor> <terminal>",
		Action:    keysetAction,
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "descr"
	app.Usage = "Inspect and derive Bitcoin output descriptors"
	app.Version = version
	app.Commands = []*cli.Command{&inspectCommand, &deriveCommand, &keysetCommand}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func descrFromArgs(ctx *cli.Context) (descriptors.StdDescr, error) {
	if ctx.Args().Len() < 1 {
		return descriptors.StdDescr{}, fmt.Errorf("missing descriptor argument")
	}
	return descriptors.ParseStdDescr(ctx.Args().First())
}

func inspectAction(ctx *cli.Context) error {
	descr, err := descrFromArgs(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("descriptor: %s\n", descr)
	fmt.Printf("class: %s\n", descr.Class())
	fmt.Printf("dust limit: %d sat\n", int64(descr.Class().DustLimit()))
	fmt.Printf("default keychain: %s\n", descr.DefaultKeychain())

	keychains := descr.Keychains()
	fmt.Print("keychains:")
	for _, keychain := range keychains {
		fmt.Printf(" %s", keychain)
	}
	fmt.Println()

	for _, xpub := range descr.Xpubs() {
		fmt.Printf("xpub: %s\n", xpub)
	}
	return nil
}

func deriveAction(ctx *cli.Context) error {
	descr, err := descrFromArgs(ctx)
	if err != nil {
		return err
	}

	params, err := networkParams(ctx.String("network"))
	if err != nil {
		return err
	}

	keychain := descr.DefaultKeychain()
	if ctx.IsSet("keychain") {
		keychain = derive.Keychain(ctx.Uint("keychain"))
	}

	from, to := ctx.Uint("from"), ctx.Uint("to")
	if to < from {
		return fmt.Errorf("--to must not be below --from")
	}

	for i := from; i <= to; i++ {
		index, err := derive.NewNormalIndex(uint32(i))
		if err != nil {
			return err
		}

		script, err := descr.DeriveScript(keychain, index)
		if err != nil {
			return err
		}
		addr, err := script.Address(params)
		if err != nil {
			return err
		}

		fmt.Printf("%s/%s %s %s\n", keychain, index, hex.EncodeToString(script), addr.EncodeAddress())
	}
	return nil
}

func keysetAction(ctx *cli.Context) error {
	descr, err := descrFromArgs(ctx)
	if err != nil {
		return err
	}
	if ctx.Args().Len() < 2 {
		return fmt.Errorf("missing terminal argument")
	}

	terminal, err := derive.ParseTerminal(ctx.Args().Get(1))
	if err != nil {
		return err
	}

	comprKeyset, err := descr.ComprKeyset(terminal)
	if err != nil {
		return err
	}
	comprKeyset.ForEach(func(pk derive.CompressedPk, origin derive.KeyOrigin) bool {
		fmt.Printf("compr %s %s\n", pk, origin)
		return true
	})

	xonlyKeyset, err := descr.XOnlyKeyset(terminal)
	if err != nil {
		return err
	}
	xonlyKeyset.ForEach(func(pk derive.XOnlyPk, tapDeriv derive.TapDerivation) bool {
		fmt.Printf("xonly %s %s\n", pk, tapDeriv.Origin)
		return true
	})
	return nil
}

func networkParams(network string) (*chaincfg.Params, error) {
	switch network {
	case "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNet3Params, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", network)
	}
}
