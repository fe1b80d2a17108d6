package test

import (
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/meverselabs/dmcexchange/contract/exchange"
	"github.com/meverselabs/dmcexchange/contract/token"
	"github.com/meverselabs/dmcexchange/core/types"

	. "github.com/meverselabs/dmcexchange/contract/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// exchangeV2 keeps the storage of the exchange and adds Version
type exchangeV2 struct {
	exchange.ExchangeContract
}

func (cont *exchangeV2) Front() interface{} {
	return &frontV2{cont: cont}
}

type frontV2 struct {
	cont *exchangeV2
}

func (f *frontV2) Version(cc types.ContractLoader) uint64 {
	return 2
}

func (f *frontV2) DMC(cc types.ContractLoader) common.Address {
	return f.cont.DMC(cc)
}

func (f *frontV2) GWT(cc types.ContractLoader) common.Address {
	return f.cont.GWT(cc)
}

func (f *frontV2) ExchangeGWT(cc *types.ContractContext, dmcAmount *amount.Amount) (*amount.Amount, error) {
	return f.cont.ExchangeGWT(cc, dmcAmount)
}

func (f *frontV2) UpgradeTo(cc *types.ContractContext, ClassID uint64) error {
	return f.cont.UpgradeTo(cc, ClassID)
}

// notProxiable is upgradeable but has another proxiable id
type notProxiable struct {
	exchange.ExchangeContract
}

func (cont *notProxiable) ProxiableID() string {
	return "other"
}

var _ = Describe("Exchange admin", func() {
	var (
		ctx                      *types.Context
		dmcAddr, gwtAddr, exAddr common.Address
		bob                      common.Address
	)

	BeforeEach(func() {
		ctx, dmcAddr, gwtAddr, exAddr = deployAll()
		bob = users[3]
	})

	It("is initialized once by the owner", func() {
		initialized, err := ViewBool(ctx, exAddr, "Initialized")
		Expect(err).To(Succeed())
		Expect(initialized).To(BeTrue())

		addr, err := ViewAddress(ctx, exAddr, "DMC")
		Expect(err).To(Succeed())
		Expect(addr).To(Equal(dmcAddr))
		addr, err = ViewAddress(ctx, exAddr, "GWT")
		Expect(err).To(Succeed())
		Expect(addr).To(Equal(gwtAddr))

		_, err = Exec(ctx, admin, exAddr, "Initialize", []interface{}{gwtAddr, dmcAddr})
		Expect(err).To(MatchError(exchange.ErrAlreadyInitialized))
	})

	It("is not usable before the initialization", func() {
		cont, err := ctx.DeployContract(bob, classMap["Exchange"], nil)
		Expect(err).To(Succeed())
		_, err = Exec(ctx, bob, cont.Address(), "MintDMC", []interface{}{hash.Hash256{}, []byte{}})
		Expect(err).To(MatchError(exchange.ErrNotInitialized))

		_, err = Exec(ctx, admin, cont.Address(), "Initialize", []interface{}{dmcAddr, gwtAddr})
		Expect(err).To(MatchError(token.ErrNotOwner))
		_, err = Exec(ctx, bob, cont.Address(), "Initialize", []interface{}{dmcAddr, gwtAddr})
		Expect(err).To(Succeed())
	})

	It("checks the mint proof when the signer is set", func() {
		signerKey := usersKey[0]
		_, err := Exec(ctx, bob, exAddr, "SetMintSigner", []interface{}{signerKey.Address()})
		Expect(err).To(MatchError(token.ErrNotOwner))
		_, err = Exec(ctx, admin, exAddr, "SetMintSigner", []interface{}{signerKey.Address()})
		Expect(err).To(Succeed())

		salt := hash.Hash([]byte("proof"))
		_, err = Exec(ctx, bob, exAddr, "MintDMC", []interface{}{salt, []byte{}})
		Expect(err).To(MatchError(exchange.ErrInvalidMintProof))

		wrong, err := adminKey.Sign(exchange.MintProofHash(exAddr, bob, salt))
		Expect(err).To(Succeed())
		_, err = Exec(ctx, bob, exAddr, "MintDMC", []interface{}{salt, wrong})
		Expect(err).To(MatchError(exchange.ErrInvalidMintProof))

		sig, err := signerKey.Sign(exchange.MintProofHash(exAddr, bob, salt))
		Expect(err).To(Succeed())
		_, err = Exec(ctx, admin, exAddr, "MintDMC", []interface{}{salt, sig})
		Expect(err).To(MatchError(exchange.ErrInvalidMintProof))
		_, err = Exec(ctx, bob, exAddr, "MintDMC", []interface{}{salt, sig})
		Expect(err).To(Succeed())
		expectBalance(ctx, dmcAddr, bob, exchange.MintAmount)
	})

	It("stops minting at the cap", func() {
		small, err := DeployDMC(ctx, classMap["DMC"], bob, amount.NewAmount(300, 0))
		Expect(err).To(Succeed())
		ex, err := DeployExchange(ctx, classMap["Exchange"], bob, small, gwtAddr)
		Expect(err).To(Succeed())
		Expect(EnableMinter(ctx, bob, small, ex)).To(Succeed())

		_, err = Exec(ctx, bob, ex, "MintDMC", []interface{}{hash.Hash([]byte{1}), []byte{}})
		Expect(err).To(Succeed())
		_, err = Exec(ctx, bob, ex, "MintDMC", []interface{}{hash.Hash([]byte{2}), []byte{}})
		Expect(err).To(MatchError(token.ErrCapExceeded))
		used, err := ViewBool(ctx, ex, "IsSaltUsed", bob, hash.Hash([]byte{2}))
		Expect(err).To(Succeed())
		Expect(used).To(BeFalse())
	})

	It("upgrades to an implementation with the same proxiable id and keeps the storage", func() {
		_, err := Exec(ctx, bob, exAddr, "UpgradeTo", []interface{}{classMap["ExchangeV2"]})
		Expect(err).To(MatchError(token.ErrNotOwner))
		_, err = Exec(ctx, admin, exAddr, "UpgradeTo", []interface{}{classMap["NotUpgradeable"]})
		Expect(err).To(MatchError(exchange.ErrInvalidImplementation))
		_, err = Exec(ctx, admin, exAddr, "UpgradeTo", []interface{}{classMap["DMC"]})
		Expect(err).To(MatchError(exchange.ErrInvalidImplementation))

		_, err = Exec(ctx, admin, exAddr, "UpgradeTo", []interface{}{classMap["ExchangeV2"]})
		Expect(err).To(Succeed())

		is, err := Exec(ctx, bob, exAddr, "Version", nil)
		Expect(err).To(Succeed())
		Expect(is[0]).To(Equal(uint64(2)))
		addr, err := ViewAddress(ctx, exAddr, "DMC")
		Expect(err).To(Succeed())
		Expect(addr).To(Equal(dmcAddr))

		Expect(EnableMinter(ctx, admin, dmcAddr, admin)).To(Succeed())
		_, err = Exec(ctx, admin, dmcAddr, "Mint", []interface{}{bob, Ether(1)})
		Expect(err).To(Succeed())
		Expect(TokenApprove(ctx, bob, dmcAddr, exAddr, Ether(1))).To(Succeed())
		_, err = Exec(ctx, bob, exAddr, "ExchangeGWT", []interface{}{Ether(1)})
		Expect(err).To(Succeed())
		expectBalance(ctx, gwtAddr, bob, Ether(210))
	})
})
