package ckb

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
)

var daoCodeHash = common.HexToHash("0x82d76d1b75fe2fd9a27dfbaa65a039221a380d76c926f378d3f81cf3e7e13f2e")

// knownScripts lists the deployed system scripts per network.
var knownScripts = map[model.Network]map[model.KnownScript]model.ScriptInfo{
	model.Mainnet: {
		model.KnownScriptNervosDao: {
			CodeHash: daoCodeHash,
			HashType: model.HashTypeType,
			CellDeps: []model.CellDep{{
				OutPoint: model.OutPoint{
					TxHash: common.HexToHash("0xe2fb199810d49a4d8beec56718ba2593b665db9d52299a0f9e6e75416d73ff5c"),
					Index:  2,
				},
				DepType: model.DepTypeCode,
			}},
		},
	},
	model.Testnet: {
		model.KnownScriptNervosDao: {
			CodeHash: daoCodeHash,
			HashType: model.HashTypeType,
			CellDeps: []model.CellDep{{
				OutPoint: model.OutPoint{
					TxHash: common.HexToHash("0x8f8c79eb6671709633fe6a46de93c0fedc9c1b8a6527a18d3983879542635c9f"),
					Index:  2,
				},
				DepType: model.DepTypeCode,
			}},
		},
	},
}

func lookupScript(network model.Network, id model.KnownScript) (model.ScriptInfo, error) {
	scripts, ok := knownScripts[network]
	if !ok {
		return model.ScriptInfo{}, fmt.Errorf("unknown network %q", network)
	}
	info, ok := scripts[id]
	if !ok {
		return model.ScriptInfo{}, fmt.Errorf("script %s not deployed on %s", id, network)
	}
	info.CellDeps = append([]model.CellDep(nil), info.CellDeps...)
	return info, nil
}
