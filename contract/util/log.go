package util

import (
	etypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/contract/token"
	"github.com/onsi/ginkgo/v2"
)

// Log is an emitted log with the decoded token event when it is a Transfer or an Approval
type Log struct {
	*etypes.Log
	Name  string
	Event *token.TransferEvent
}

func wrapLogs(ls []*etypes.Log) []*Log {
	result := make([]*Log, 0, len(ls))
	for _, l := range ls {
		wl := &Log{Log: l}
		if ev, err := token.ParseTransferLog(l); err == nil {
			wl.Name = "Transfer"
			wl.Event = ev
		} else if ev, err := token.ParseApprovalLog(l); err == nil {
			wl.Name = "Approval"
			wl.Event = ev
		}
		result = append(result, wl)
	}
	return result
}

// HasEvent reports whether the logs have the token event of the contract with the arguments
func HasEvent(ls []*Log, cont common.Address, name string, from common.Address, to common.Address, am *amount.Amount) bool {
	for _, l := range ls {
		if l.Event == nil || l.Address != cont || l.Name != name {
			continue
		}
		if l.Event.From == from && l.Event.To == to && l.Event.Amount.Equal(am) {
			return true
		}
	}
	return false
}

func GPrintln(v ...interface{}) {
	ginkgo.GinkgoWriter.Println(v...)
}

func GPrintf(format string, v ...interface{}) {
	ginkgo.GinkgoWriter.Printf(format, v...)
}
