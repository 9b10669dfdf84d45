package app

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/crypto"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/x/escrow"
	"github.com/iov-one/swapd/x/token"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is reported in abci Info and names the database
const Name = "swapd"

// DefaultOperatorLamports funds the operator wallet created by init
const DefaultOperatorLamports uint64 = 1000000000000

// ProgramID returns the program identity used for the named
// extension. Derived addresses are bound to it, so it must never
// change once the chain started.
func ProgramID(name string) swapd.Address {
	sum := sha256.Sum256([]byte(Name + ":" + name))
	return swapd.Address(sum[:])
}

// Genesis is the app_state section written by init
type Genesis struct {
	Conf  GenesisConf   `json:"conf"`
	Token token.Genesis `json:"token"`
}

// GenesisConf holds the configuration of every extension
type GenesisConf struct {
	Token  token.Config  `json:"token"`
	Escrow escrow.Config `json:"escrow"`
}

// GenInitOptions will produce some basic options for one funded
// operator wallet, to use for dev mode.
//
// The operator address can be given as the first argument, else a
// new key is generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var operator swapd.Address
	if len(args) > 0 {
		addr, err := swapd.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "operator address")
		}
		operator = addr
	} else {
		addr, keys, err := GenerateKey()
		if err != nil {
			return nil, err
		}
		operator = addr
		fmt.Println(keys)
	}

	gen := Genesis{
		Conf: GenesisConf{
			Token: token.Config{
				ProgramID:      ProgramID("token"),
				AccountDeposit: token.DefaultAccountDeposit,
				RecordDeposit:  token.DefaultRecordDeposit,
			},
			Escrow: escrow.Config{
				ProgramID: ProgramID("escrow"),
			},
		},
		Token: token.Genesis{
			Mints:    []token.GenesisMint{},
			Accounts: []token.GenesisAccount{},
			Wallets: []token.GenesisWallet{
				{Address: operator, Lamports: DefaultOperatorLamports},
			},
		},
	}
	return json.MarshalIndent(gen, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, Name+".db")
	}

	application, err := Application(Name, Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}

	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Address swapd.Address      `json:"address"`
	Pubkey  *crypto.PublicKey  `json:"pub_key"`
	Secret  *crypto.PrivateKey `json:"secret"`
}

// GenerateKey returns the address of a new key pair, along with
// a json representation of the keys.
func GenerateKey() (swapd.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Address: addr, Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return addr, string(keys), nil
}
