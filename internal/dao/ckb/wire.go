package ckb

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// JSON shapes of the node RPC. Quantities travel as 0x-prefixed hex.

type rpcScript struct {
	CodeHash common.Hash   `json:"code_hash"`
	HashType string        `json:"hash_type"`
	Args     hexutil.Bytes `json:"args"`
}

type rpcOutPoint struct {
	TxHash common.Hash    `json:"tx_hash"`
	Index  hexutil.Uint64 `json:"index"`
}

type rpcCellOutput struct {
	Capacity hexutil.Uint64 `json:"capacity"`
	Lock     rpcScript      `json:"lock"`
	Type     *rpcScript     `json:"type"`
}

type rpcCellInput struct {
	Since          hexutil.Uint64 `json:"since"`
	PreviousOutput rpcOutPoint    `json:"previous_output"`
}

type rpcHeader struct {
	Hash      common.Hash    `json:"hash"`
	Number    hexutil.Uint64 `json:"number"`
	Epoch     hexutil.Uint64 `json:"epoch"`
	Dao       hexutil.Bytes  `json:"dao"`
	Timestamp hexutil.Uint64 `json:"timestamp"`
}

type rpcTransaction struct {
	Hash   common.Hash    `json:"hash"`
	Inputs []rpcCellInput `json:"inputs"`
}

const txStatusCommitted = "committed"

type rpcTxStatus struct {
	Status    string       `json:"status"`
	BlockHash *common.Hash `json:"block_hash"`
}

type rpcTransactionWithStatus struct {
	Transaction *rpcTransaction `json:"transaction"`
	TxStatus    rpcTxStatus     `json:"tx_status"`
}

type rpcSearchKeyFilter struct {
	Script *rpcScript `json:"script,omitempty"`
}

type rpcSearchKey struct {
	Script     rpcScript           `json:"script"`
	ScriptType string              `json:"script_type"`
	Filter     *rpcSearchKeyFilter `json:"filter,omitempty"`
	WithData   bool                `json:"with_data"`
}

type rpcIndexerCell struct {
	Output      rpcCellOutput  `json:"output"`
	OutputData  hexutil.Bytes  `json:"output_data"`
	OutPoint    rpcOutPoint    `json:"out_point"`
	BlockNumber hexutil.Uint64 `json:"block_number"`
	TxIndex     hexutil.Uint64 `json:"tx_index"`
}

type rpcCells struct {
	Objects    []rpcIndexerCell `json:"objects"`
	LastCursor string           `json:"last_cursor"`
}
