package ledger

import (
	"encoding/hex"

	etypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/meverselabs/dmcexchange/core/chain"
	"github.com/meverselabs/dmcexchange/core/types"
	"github.com/pkg/errors"
)

// Ledger serves the state of the chain and submits signed transactions
type Ledger struct {
	cn *chain.Chain
}

// NewLedger returns a Ledger
func NewLedger(cn *chain.Chain) *Ledger {
	return &Ledger{
		cn: cn,
	}
}

// Name returns the name of the service
func (s *Ledger) Name() string {
	return "dmcexchange.ledger"
}

// SendTx executes the transaction and returns its receipt
// a reverted transaction returns the failed receipt without an error
func (s *Ledger) SendTx(tx *types.Transaction, sig common.Signature) (*types.Receipt, error) {
	receipt, err := s.cn.ExecuteTransaction(tx, sig)
	if receipt == nil {
		return nil, err
	}
	return receipt, nil
}

// Call executes the method without storing any change
func (s *Ledger) Call(from common.Address, to common.Address, method string, args []interface{}) ([]interface{}, error) {
	return s.cn.Call(from, to, method, args)
}

// BalanceOf returns the token balance of the address
func (s *Ledger) BalanceOf(token common.Address, addr common.Address) (*amount.Amount, error) {
	rets, err := s.cn.Call(common.ZeroAddr, token, "BalanceOf", []interface{}{addr})
	if err != nil {
		return nil, err
	}
	if len(rets) != 1 {
		return nil, errors.WithStack(ErrInvalidResult)
	}
	am, ok := rets[0].(*amount.Amount)
	if !ok {
		return nil, errors.WithStack(ErrInvalidResult)
	}
	return am, nil
}

// ReceiptView is the json form of the receipt
type ReceiptView struct {
	TxHash  string        `json:"txHash"`
	Height  uint32        `json:"height"`
	From    string        `json:"from"`
	To      string        `json:"to"`
	Method  string        `json:"method"`
	Status  uint8         `json:"status"`
	Error   string        `json:"error,omitempty"`
	Results []interface{} `json:"results"`
	Logs    []*LogView    `json:"logs"`
}

// LogView is the json form of the log
type LogView struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
	Index   uint     `json:"index"`
}

// NewReceiptView returns the json form of the receipt
func NewReceiptView(rc *types.Receipt) (*ReceiptView, error) {
	view := &ReceiptView{
		TxHash:  rc.TxHash.String(),
		Height:  rc.Height,
		From:    rc.From.String(),
		To:      rc.To.String(),
		Method:  rc.Method,
		Status:  rc.Status,
		Error:   rc.Err,
		Results: []interface{}{},
		Logs:    make([]*LogView, 0, len(rc.Logs)),
	}
	if rc.Succeeded() {
		rets, err := rc.Results()
		if err != nil {
			return nil, err
		}
		view.Results = FormatResults(rets)
	}
	for _, l := range rc.Logs {
		view.Logs = append(view.Logs, newLogView(l))
	}
	return view, nil
}

func newLogView(l *etypes.Log) *LogView {
	topics := make([]string, 0, len(l.Topics))
	for _, t := range l.Topics {
		topics = append(topics, t.String())
	}
	return &LogView{
		Address: l.Address.String(),
		Topics:  topics,
		Data:    "0x" + hex.EncodeToString(l.Data),
		Index:   l.Index,
	}
}

// FormatResults converts the returned values into json friendly values
func FormatResults(rets []interface{}) []interface{} {
	result := make([]interface{}, 0, len(rets))
	for _, v := range rets {
		result = append(result, formatValue(v))
	}
	return result
}

func formatValue(v interface{}) interface{} {
	switch rv := v.(type) {
	case *amount.Amount:
		if rv == nil {
			return nil
		}
		return rv.String()
	case common.Address:
		return rv.String()
	case hash.Hash256:
		return rv.String()
	case []byte:
		return "0x" + hex.EncodeToString(rv)
	case []common.Address:
		as := make([]string, 0, len(rv))
		for _, a := range rv {
			as = append(as, a.String())
		}
		return as
	case []interface{}:
		return FormatResults(rv)
	}
	return v
}
