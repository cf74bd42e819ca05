package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/paychan/crypto"
)

const keyFileName = "key.hex"

// KeyOptions selects the private key file.
type KeyOptions struct {
	Key string `long:"key" env:"PAYCHAND_KEY" description:"Path to the private key file (default <home>/key.hex)"`
}

const keygenLong = `
Generate a new secp256k1 private key and print its address.

The key is stored hex encoded. This command fails if the key file already
exists.`

type keygenCmd struct {
	env *environment
	KeyOptions
}

func (c *keygenCmd) Execute(args []string) error {
	path := c.env.inHome(c.Key, keyFileName)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first.
		return fmt.Errorf("private key file %q already exists, delete this file and try again", path)
	}
	key, err := crypto.GenPrivateKey()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("cannot create key directory: %s", err)
	}
	if err := ioutil.WriteFile(path, []byte(key.Hex()+"\n"), 0600); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	_, err = fmt.Fprintln(c.env.out, key.Address())
	return err
}

const addressLong = `
Print the address of the private key. Use --bech32 for the bech32 form.`

type addressCmd struct {
	env *environment
	KeyOptions
	Bech32 bool `long:"bech32" description:"Print the bech32 form of the address"`
}

func (c *addressCmd) Execute(args []string) error {
	key, err := loadKey(c.env.inHome(c.Key, keyFileName))
	if err != nil {
		return err
	}
	addr := key.Address()
	if !c.Bech32 {
		_, err = fmt.Fprintln(c.env.out, addr)
		return err
	}
	enc, err := addr.Bech32()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.env.out, enc)
	return err
}

func loadKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	return crypto.PrivateKeyFromHex(strings.TrimSpace(string(raw)))
}
