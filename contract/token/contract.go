package token

import (
	"bytes"
	"math/big"
	"sort"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/core/types"
	"github.com/pkg/errors"
)

// TokenContract is a mintable token with the minter allow-list managed by the master
type TokenContract struct {
	addr   common.Address
	master common.Address
}

func (cont *TokenContract) Address() common.Address {
	return cont.addr
}

func (cont *TokenContract) Master() common.Address {
	return cont.master
}

func (cont *TokenContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *TokenContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &TokenContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	return cont.Setup(cc, data)
}

// Setup stores the construction and issues the initial supply
func (cont *TokenContract) Setup(cc *types.ContractContext, data *TokenContractConstruction) error {
	cc.SetContractData([]byte{tagTokenName}, []byte(data.Name))
	cc.SetContractData([]byte{tagTokenSymbol}, []byte(data.Symbol))
	if data.Cap != nil {
		if !data.Cap.IsPlus() {
			return errors.WithStack(ErrInvalidAmount)
		}
		cc.SetContractData([]byte{tagTokenCap}, data.Cap.Bytes())
	}
	for _, k := range sortedAddresses(data.InitialSupplyMap) {
		if err := cont.Issue(cc, k, data.InitialSupplyMap[k]); err != nil {
			return err
		}
	}
	return nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *TokenContract) addBalance(cc *types.ContractContext, addr common.Address, am *amount.Amount) {
	bal := cont.BalanceOf(cc, addr)
	cc.SetAccountData(addr, []byte{tagTokenAmount}, bal.Add(am).Bytes())
}

func (cont *TokenContract) subBalance(cc *types.ContractContext, addr common.Address, am *amount.Amount) error {
	bal := cont.BalanceOf(cc, addr)
	if bal.Less(am) {
		return ErrInsufficientBalance
	}
	bal = bal.Sub(am)
	if bal.IsZero() {
		cc.SetAccountData(addr, []byte{tagTokenAmount}, nil)
	} else {
		cc.SetAccountData(addr, []byte{tagTokenAmount}, bal.Bytes())
	}
	return nil
}

func (cont *TokenContract) setFlag(cc *types.ContractContext, addr common.Address, tag byte, is bool) {
	if is {
		cc.SetAccountData(addr, []byte{tag}, []byte{1})
	} else {
		cc.SetAccountData(addr, []byte{tag}, nil)
	}
}

func (cont *TokenContract) flag(cc types.ContractLoader, addr common.Address, tag byte) bool {
	bs := cc.AccountData(addr, []byte{tag})
	return len(bs) == 1 && bs[0] == 1
}

//////////////////////////////////////////////////
// Shared Functions
//////////////////////////////////////////////////

// OnlyOwner returns ErrNotOwner when the caller is not the master
func (cont *TokenContract) OnlyOwner(cc *types.ContractContext) error {
	if cc.From() != cont.Master() {
		return ErrNotOwner
	}
	return nil
}

// Issue increases the balance and the total supply, the cap is checked when it is set
func (cont *TokenContract) Issue(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	if Amount.IsMinus() {
		return ErrInvalidAmount
	}
	if To == common.ZeroAddr {
		return ErrTransferToZero
	}
	total := cont.TotalSupply(cc).Add(Amount)
	if capped := cont.Cap(cc); capped != nil && capped.Less(total) {
		return ErrCapExceeded
	}
	cc.SetContractData([]byte{tagTokenTotalSupply}, total.Bytes())
	cont.addBalance(cc, To, Amount)
	emitTransfer(cc, common.ZeroAddr, To, Amount)
	return nil
}

// Destroy decreases the balance and the total supply
func (cont *TokenContract) Destroy(cc *types.ContractContext, From common.Address, Amount *amount.Amount) error {
	if Amount.IsMinus() {
		return ErrInvalidAmount
	}
	if err := cont.subBalance(cc, From, Amount); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagTokenTotalSupply}, cont.TotalSupply(cc).Sub(Amount).Bytes())
	emitTransfer(cc, From, common.ZeroAddr, Amount)
	return nil
}

// Move transfers the amount between the accounts without any access check
func (cont *TokenContract) Move(cc *types.ContractContext, From common.Address, To common.Address, Amount *amount.Amount) error {
	if Amount.IsMinus() {
		return ErrInvalidAmount
	}
	if To == common.ZeroAddr {
		return ErrTransferToZero
	}
	if err := cont.subBalance(cc, From, Amount); err != nil {
		return err
	}
	cont.addBalance(cc, To, Amount)
	emitTransfer(cc, From, To, Amount)
	return nil
}

// SpendAllowance decreases the allowance of the spender for the owner
func (cont *TokenContract) SpendAllowance(cc *types.ContractContext, owner common.Address, spender common.Address, Amount *amount.Amount) error {
	allowed := cont.Allowance(cc, owner, spender)
	if allowed.Less(Amount) {
		return ErrInsufficientAllowance
	}
	cont._approve(cc, owner, spender, allowed.Sub(Amount))
	return nil
}

func (cont *TokenContract) _approve(cc *types.ContractContext, owner common.Address, spender common.Address, Amount *amount.Amount) {
	if Amount.IsZero() {
		cc.SetAccountData(owner, MakeAllowanceTokenKey(spender), nil)
	} else {
		cc.SetAccountData(owner, MakeAllowanceTokenKey(spender), Amount.Bytes())
	}
	emitApproval(cc, owner, spender, Amount)
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (cont *TokenContract) Transfer(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	return cont.Move(cc, cc.From(), To, Amount)
}

func (cont *TokenContract) TransferFrom(cc *types.ContractContext, From common.Address, To common.Address, Amount *amount.Amount) error {
	if err := cont.SpendAllowance(cc, From, cc.From(), Amount); err != nil {
		return err
	}
	return cont.Move(cc, From, To, Amount)
}

func (cont *TokenContract) Approve(cc *types.ContractContext, spender common.Address, Amount *amount.Amount) error {
	if spender == common.ZeroAddr {
		return ErrApproveToZero
	}
	if Amount.IsMinus() {
		return ErrInvalidAmount
	}
	cont._approve(cc, cc.From(), spender, Amount)
	return nil
}

func (cont *TokenContract) Burn(cc *types.ContractContext, Amount *amount.Amount) error {
	return cont.Destroy(cc, cc.From(), Amount)
}

func (cont *TokenContract) BurnFrom(cc *types.ContractContext, From common.Address, Amount *amount.Amount) error {
	if err := cont.SpendAllowance(cc, From, cc.From(), Amount); err != nil {
		return err
	}
	return cont.Destroy(cc, From, Amount)
}

func (cont *TokenContract) Mint(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	if !cont.IsMinter(cc, cc.From()) {
		return ErrMintNotAllowed
	}
	return cont.Issue(cc, To, Amount)
}

func (cont *TokenContract) EnableMinter(cc *types.ContractContext, addrs []common.Address) error {
	if err := cont.OnlyOwner(cc); err != nil {
		return err
	}
	for _, addr := range addrs {
		cont.setFlag(cc, addr, tagTokenMinter, true)
	}
	return nil
}

func (cont *TokenContract) DisableMinter(cc *types.ContractContext, addrs []common.Address) error {
	if err := cont.OnlyOwner(cc); err != nil {
		return err
	}
	for _, addr := range addrs {
		cont.setFlag(cc, addr, tagTokenMinter, false)
	}
	return nil
}

// EnableTransfer adds the addresses to the transfer allow-list
// the allow-list is consulted only by the tokens that gate transfers
func (cont *TokenContract) EnableTransfer(cc *types.ContractContext, addrs []common.Address) error {
	if err := cont.OnlyOwner(cc); err != nil {
		return err
	}
	for _, addr := range addrs {
		cont.setFlag(cc, addr, tagTokenTransferAllowed, true)
	}
	return nil
}

func (cont *TokenContract) DisableTransfer(cc *types.ContractContext, addrs []common.Address) error {
	if err := cont.OnlyOwner(cc); err != nil {
		return err
	}
	for _, addr := range addrs {
		cont.setFlag(cc, addr, tagTokenTransferAllowed, false)
	}
	return nil
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *TokenContract) Name(cc types.ContractLoader) string {
	return string(cc.ContractData([]byte{tagTokenName}))
}

func (cont *TokenContract) Symbol(cc types.ContractLoader) string {
	return string(cc.ContractData([]byte{tagTokenSymbol}))
}

func (cont *TokenContract) Decimals(cc types.ContractLoader) *big.Int {
	return big.NewInt(amount.FractionalCount)
}

func (cont *TokenContract) TotalSupply(cc types.ContractLoader) *amount.Amount {
	bs := cc.ContractData([]byte{tagTokenTotalSupply})
	return amount.NewAmountFromBytes(bs)
}

// Cap returns nil when the supply is not capped
func (cont *TokenContract) Cap(cc types.ContractLoader) *amount.Amount {
	bs := cc.ContractData([]byte{tagTokenCap})
	if len(bs) == 0 {
		return nil
	}
	return amount.NewAmountFromBytes(bs)
}

func (cont *TokenContract) BalanceOf(cc types.ContractLoader, from common.Address) *amount.Amount {
	bs := cc.AccountData(from, []byte{tagTokenAmount})
	return amount.NewAmountFromBytes(bs)
}

func (cont *TokenContract) Allowance(cc types.ContractLoader, _owner common.Address, _spender common.Address) *amount.Amount {
	bs := cc.AccountData(_owner, MakeAllowanceTokenKey(_spender))
	return amount.NewAmountFromBytes(bs)
}

func (cont *TokenContract) IsMinter(cc types.ContractLoader, addr common.Address) bool {
	return cont.flag(cc, addr, tagTokenMinter)
}

func (cont *TokenContract) IsTransferAllowed(cc types.ContractLoader, addr common.Address) bool {
	return cont.flag(cc, addr, tagTokenTransferAllowed)
}

func (cont *TokenContract) Owner(cc types.ContractLoader) common.Address {
	return cont.Master()
}

func sortedAddresses(m map[common.Address]*amount.Amount) []common.Address {
	addrs := make([]common.Address, 0, len(m))
	for k := range m {
		addrs = append(addrs, k)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
	})
	return addrs
}
