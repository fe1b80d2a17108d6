package exchange

import (
	"bytes"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/meverselabs/dmcexchange/contract/token"
	"github.com/meverselabs/dmcexchange/core/types"
)

const (
	// ProxiableID is shared by every upgradeable exchange implementation
	ProxiableID = "dmcexchange.exchange"
	// Rate is the GWT amount exchanged for one DMC
	Rate = 210
)

// MintAmount is the DMC amount minted by MintDMC
var MintAmount = amount.NewAmount(210, 0)

var (
	GWTExchangedEventID = hash.Hash([]byte("GWTExchanged(address,uint256,uint256)"))
	DMCExchangedEventID = hash.Hash([]byte("DMCExchanged(address,uint256,uint256)"))
)

// ExchangeContract converts DMC and GWT at the fixed rate and mints DMC for claimed salts
// DMC paid in is held by the contract and paid back by ExchangeDMC
type ExchangeContract struct {
	addr   common.Address
	master common.Address
}

func (cont *ExchangeContract) Address() common.Address {
	return cont.addr
}

func (cont *ExchangeContract) Master() common.Address {
	return cont.master
}

func (cont *ExchangeContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *ExchangeContract) ProxiableID() string {
	return ProxiableID
}

func (cont *ExchangeContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	if len(Args) == 0 {
		return nil
	}
	data := &ExchangeContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	return cont.Initialize(cc, data.DMC, data.GWT)
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *ExchangeContract) onlyOwner(cc *types.ContractContext) error {
	if cc.From() != cont.Master() {
		return token.ErrNotOwner
	}
	return nil
}

func (cont *ExchangeContract) tokens(cc *types.ContractContext) (common.Address, common.Address, error) {
	if !cont.Initialized(cc) {
		return common.ZeroAddr, common.ZeroAddr, ErrNotInitialized
	}
	return cont.DMC(cc), cont.GWT(cc), nil
}

func (cont *ExchangeContract) verifyProof(cc *types.ContractContext, salt hash.Hash256, proof []byte) error {
	signer := cont.MintSigner(cc)
	if signer == common.ZeroAddr {
		return nil
	}
	if len(proof) != common.SignatureSize {
		return ErrInvalidMintProof
	}
	addr, err := common.RecoverAddress(MintProofHash(cont.addr, cc.From(), salt), common.Signature(proof))
	if err != nil || addr != signer {
		return ErrInvalidMintProof
	}
	return nil
}

func balanceOf(cc *types.ContractContext, tokenAddr common.Address, addr common.Address) (*amount.Amount, error) {
	is, err := cc.Exec(cc, tokenAddr, "BalanceOf", []interface{}{addr})
	if err != nil {
		return nil, err
	}
	if len(is) != 1 {
		return nil, ErrInvalidResult
	}
	bal, ok := is[0].(*amount.Amount)
	if !ok {
		return nil, ErrInvalidResult
	}
	return bal, nil
}

// MintProofHash returns the hash signed by the mint signer for the caller and the salt
func MintProofHash(exchange common.Address, caller common.Address, salt hash.Hash256) hash.Hash256 {
	return hash.Hash(exchange[:], caller[:], salt[:])
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (cont *ExchangeContract) Initialize(cc *types.ContractContext, DMC common.Address, GWT common.Address) error {
	if cont.Initialized(cc) {
		return ErrAlreadyInitialized
	}
	if err := cont.onlyOwner(cc); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagDMC}, DMC[:])
	cc.SetContractData([]byte{tagGWT}, GWT[:])
	cc.SetContractData([]byte{tagInitialized}, []byte{1})
	return nil
}

// MintDMC mints MintAmount DMC to the caller once per salt
// the proof is checked only when the mint signer is set
func (cont *ExchangeContract) MintDMC(cc *types.ContractContext, salt hash.Hash256, proof []byte) error {
	DMC, _, err := cont.tokens(cc)
	if err != nil {
		return err
	}
	if cont.IsSaltUsed(cc, cc.From(), salt) {
		return ErrSaltAlreadyUsed
	}
	if err := cont.verifyProof(cc, salt, proof); err != nil {
		return err
	}
	cc.SetAccountData(cc.From(), makeSaltKey(salt), []byte{1})
	if _, err := cc.Exec(cc, DMC, "Mint", []interface{}{cc.From(), MintAmount.Clone()}); err != nil {
		return err
	}
	return nil
}

// ExchangeGWT takes the DMC of the caller by the allowance and mints Rate times GWT to the caller
func (cont *ExchangeContract) ExchangeGWT(cc *types.ContractContext, dmcAmount *amount.Amount) (*amount.Amount, error) {
	DMC, GWT, err := cont.tokens(cc)
	if err != nil {
		return nil, err
	}
	if dmcAmount == nil || !dmcAmount.IsPlus() {
		return nil, ErrInvalidExchangeAmount
	}
	if _, err := cc.Exec(cc, DMC, "TransferFrom", []interface{}{cc.From(), cont.addr, dmcAmount}); err != nil {
		return nil, err
	}
	gwtAmount := dmcAmount.MulC(Rate)
	if _, err := cc.Exec(cc, GWT, "Mint", []interface{}{cc.From(), gwtAmount}); err != nil {
		return nil, err
	}
	cc.AddLog([]hash.Hash256{GWTExchangedEventID, hash.BytesToHash(cc.From().Bytes())}, token.PackUint256s(dmcAmount.Int, gwtAmount.Int))
	return gwtAmount, nil
}

// ExchangeDMC burns the GWT of the caller by the allowance and pays the DMC back from the exchange
func (cont *ExchangeContract) ExchangeDMC(cc *types.ContractContext, gwtAmount *amount.Amount) (*amount.Amount, error) {
	DMC, GWT, err := cont.tokens(cc)
	if err != nil {
		return nil, err
	}
	if gwtAmount == nil || !gwtAmount.IsPlus() || !gwtAmount.ModC(Rate).IsZero() {
		return nil, ErrInvalidExchangeAmount
	}
	dmcAmount := gwtAmount.DivC(Rate)
	bal, err := balanceOf(cc, DMC, cont.addr)
	if err != nil {
		return nil, err
	}
	if bal.Less(dmcAmount) {
		return nil, ErrInsufficientExchangeBalance
	}
	if _, err := cc.Exec(cc, GWT, "BurnFrom", []interface{}{cc.From(), gwtAmount}); err != nil {
		return nil, err
	}
	if _, err := cc.Exec(cc, DMC, "Transfer", []interface{}{cc.From(), dmcAmount}); err != nil {
		return nil, err
	}
	cc.AddLog([]hash.Hash256{DMCExchangedEventID, hash.BytesToHash(cc.From().Bytes())}, token.PackUint256s(gwtAmount.Int, dmcAmount.Int))
	return dmcAmount, nil
}

func (cont *ExchangeContract) SetMintSigner(cc *types.ContractContext, signer common.Address) error {
	if err := cont.onlyOwner(cc); err != nil {
		return err
	}
	if signer == common.ZeroAddr {
		cc.SetContractData([]byte{tagMintSigner}, nil)
	} else {
		cc.SetContractData([]byte{tagMintSigner}, signer[:])
	}
	return nil
}

// UpgradeTo replaces the implementation and keeps the storage
// the next class must share the ProxiableID
func (cont *ExchangeContract) UpgradeTo(cc *types.ContractContext, ClassID uint64) error {
	if err := cont.onlyOwner(cc); err != nil {
		return err
	}
	next, err := types.CreateContract(&types.ContractDefine{
		Address: cont.addr,
		Owner:   cont.master,
		ClassID: ClassID,
	})
	if err != nil {
		return err
	}
	if up, ok := next.(types.UpgradeableContract); !ok || up.ProxiableID() != ProxiableID {
		return ErrInvalidImplementation
	}
	return cc.UpgradeContract(ClassID)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *ExchangeContract) Initialized(cc types.ContractLoader) bool {
	bs := cc.ContractData([]byte{tagInitialized})
	return len(bs) == 1 && bs[0] == 1
}

func (cont *ExchangeContract) DMC(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagDMC}))
}

func (cont *ExchangeContract) GWT(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagGWT}))
}

func (cont *ExchangeContract) MintSigner(cc types.ContractLoader) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagMintSigner}))
}

func (cont *ExchangeContract) IsSaltUsed(cc types.ContractLoader, addr common.Address, salt hash.Hash256) bool {
	bs := cc.AccountData(addr, makeSaltKey(salt))
	return len(bs) == 1 && bs[0] == 1
}

func (cont *ExchangeContract) Owner(cc types.ContractLoader) common.Address {
	return cont.Master()
}
