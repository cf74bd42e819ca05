package main

import (
	"fmt"

	"github.com/iov-one/paychan/app"
)

const initLong = `
Initialize the state with the accounts and the configuration declared in
the genesis file. A state can be initialized only once.`

type initCmd struct {
	env     *environment
	Genesis string `long:"genesis" description:"Path to the genesis file (default <home>/genesis.json)"`
}

func (c *initCmd) Execute(args []string) error {
	gen, err := app.LoadGenesis(c.env.inHome(c.Genesis, "genesis.json"))
	if err != nil {
		return err
	}
	return c.env.withApp(func(a *app.StoreApp) error {
		if err := a.InitChain(gen); err != nil {
			return err
		}
		_, err := fmt.Fprintf(c.env.out, "initialized chain %s\n", gen.ChainID)
		return err
	})
}
