package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	etypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/meverselabs/dmcexchange/core/types"
	"github.com/pkg/errors"
)

var (
	TransferEventID = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))
	ApprovalEventID = crypto.Keccak256Hash([]byte("Approval(address,address,uint256)"))
)

var ErrNotTokenEvent = errors.New("not token event")

var uint256Args abi.Arguments

func init() {
	uint256Type, err := abi.NewType("uint256", "", nil)
	if err != nil {
		panic(err)
	}
	uint256Args = abi.Arguments{{Type: uint256Type}}
}

// PackUint256s packs the values as the non-indexed uint256 fields of an event
func PackUint256s(vs ...*big.Int) []byte {
	var data []byte
	for _, v := range vs {
		bs, err := uint256Args.Pack(v)
		if err != nil {
			panic(err)
		}
		data = append(data, bs...)
	}
	return data
}

// UnpackUint256s unpacks count uint256 fields of the event data
func UnpackUint256s(data []byte, count int) ([]*big.Int, error) {
	if len(data) != count*32 {
		return nil, errors.Wrapf(types.ErrInvalidLog, "data length %v", len(data))
	}
	vs := make([]*big.Int, 0, count)
	for i := 0; i < count; i++ {
		is, err := uint256Args.Unpack(data[i*32 : (i+1)*32])
		if err != nil {
			return nil, errors.WithStack(err)
		}
		vs = append(vs, is[0].(*big.Int))
	}
	return vs, nil
}

func addressTopic(addr common.Address) hash.Hash256 {
	return hash.BytesToHash(addr[:])
}

func emitTransfer(cc *types.ContractContext, from common.Address, to common.Address, am *amount.Amount) {
	cc.AddLog([]hash.Hash256{TransferEventID, addressTopic(from), addressTopic(to)}, PackUint256s(am.Int))
}

func emitApproval(cc *types.ContractContext, owner common.Address, spender common.Address, am *amount.Amount) {
	cc.AddLog([]hash.Hash256{ApprovalEventID, addressTopic(owner), addressTopic(spender)}, PackUint256s(am.Int))
}

// TransferEvent is the decoded Transfer log, Approval logs decode to the same shape
type TransferEvent struct {
	Token  common.Address
	From   common.Address
	To     common.Address
	Amount *amount.Amount
}

func parseLog(l *etypes.Log, id hash.Hash256) (*TransferEvent, error) {
	if len(l.Topics) != 3 || l.Topics[0] != id {
		return nil, errors.WithStack(ErrNotTokenEvent)
	}
	vs, err := UnpackUint256s(l.Data, 1)
	if err != nil {
		return nil, err
	}
	return &TransferEvent{
		Token:  l.Address,
		From:   common.BytesToAddress(l.Topics[1][12:]),
		To:     common.BytesToAddress(l.Topics[2][12:]),
		Amount: amount.NewAmountFromBig(vs[0]),
	}, nil
}

// ParseTransferLog decodes a Transfer(from, to, value) log
func ParseTransferLog(l *etypes.Log) (*TransferEvent, error) {
	return parseLog(l, TransferEventID)
}

// ParseApprovalLog decodes an Approval(owner, spender, value) log into From and To
func ParseApprovalLog(l *etypes.Log) (*TransferEvent, error) {
	return parseLog(l, ApprovalEventID)
}
