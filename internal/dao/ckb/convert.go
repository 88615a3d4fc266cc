package ckb

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
	"github.com/goodnatureofminers/nervosdao-backend/pkg/safe"
)

func headerFromRPC(h rpcHeader) (model.Header, error) {
	dao, err := model.ParseDaoField(h.Dao)
	if err != nil {
		return model.Header{}, fmt.Errorf("parse dao field of %s: %w", h.Hash.Hex(), err)
	}
	timestamp, err := safe.Int64(uint64(h.Timestamp))
	if err != nil {
		return model.Header{}, fmt.Errorf("convert timestamp of %s: %w", h.Hash.Hex(), err)
	}
	return model.Header{
		Hash:      h.Hash,
		Number:    uint64(h.Number),
		Epoch:     model.ParseEpoch(uint64(h.Epoch)),
		Dao:       dao,
		Timestamp: time.UnixMilli(timestamp).UTC(),
	}, nil
}

func scriptFromRPC(s rpcScript) (model.Script, error) {
	hashType, err := model.ParseHashType(s.HashType)
	if err != nil {
		return model.Script{}, err
	}
	args := []byte(s.Args)
	if args == nil {
		args = []byte{}
	}
	return model.Script{CodeHash: s.CodeHash, HashType: hashType, Args: args}, nil
}

func scriptToRPC(s model.Script) rpcScript {
	args := hexutil.Bytes(s.Args)
	if args == nil {
		args = hexutil.Bytes{}
	}
	return rpcScript{CodeHash: s.CodeHash, HashType: string(s.HashType), Args: args}
}

func outPointFromRPC(o rpcOutPoint) (model.OutPoint, error) {
	index, err := safe.Uint32(uint64(o.Index))
	if err != nil {
		return model.OutPoint{}, fmt.Errorf("convert index of %s: %w", o.TxHash.Hex(), err)
	}
	return model.OutPoint{TxHash: o.TxHash, Index: index}, nil
}

func cellFromRPC(c rpcIndexerCell) (model.Cell, error) {
	outPoint, err := outPointFromRPC(c.OutPoint)
	if err != nil {
		return model.Cell{}, err
	}
	lock, err := scriptFromRPC(c.Output.Lock)
	if err != nil {
		return model.Cell{}, fmt.Errorf("convert lock of %s: %w", outPoint, err)
	}
	output := model.CellOutput{Capacity: uint64(c.Output.Capacity), Lock: lock}
	if c.Output.Type != nil {
		typ, err := scriptFromRPC(*c.Output.Type)
		if err != nil {
			return model.Cell{}, fmt.Errorf("convert type of %s: %w", outPoint, err)
		}
		output.Type = &typ
	}
	data := []byte(c.OutputData)
	if data == nil {
		data = []byte{}
	}
	return model.Cell{
		OutPoint:    outPoint,
		Output:      output,
		OutputData:  data,
		BlockNumber: uint64(c.BlockNumber),
	}, nil
}

func inputsFromRPC(inputs []rpcCellInput) ([]model.CellInput, error) {
	out := make([]model.CellInput, 0, len(inputs))
	for i, in := range inputs {
		previous, err := outPointFromRPC(in.PreviousOutput)
		if err != nil {
			return nil, fmt.Errorf("convert input %d: %w", i, err)
		}
		out = append(out, model.CellInput{PreviousOutput: previous, Since: uint64(in.Since)})
	}
	return out, nil
}
