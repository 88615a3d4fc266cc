// Package model defines ledger value types consumed by the NervosDAO components.
package model

type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// KnownScript names a script the ledger client can resolve from its registry.
type KnownScript string

var (
	// KnownScriptNervosDao is the on-chain DAO type script.
	KnownScriptNervosDao KnownScript = "NervosDao"
)
