package test

import (
	"math/big"

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

var _ = Describe("Exchange", Ordered, func() {
	var (
		ctx                      *types.Context
		dmcAddr, gwtAddr, exAddr common.Address
		s1, s2                   common.Address
	)

	BeforeAll(func() {
		ctx, dmcAddr, gwtAddr, exAddr = deployAll()
		s1, s2 = users[0], users[1]
	})

	AfterAll(func() {
		GPrintln(ctx.Dump())
	})

	It("mints DMC for the salt and lets a minter mint", func() {
		_, logs, err := ExecWithLogs(ctx, admin, exAddr, "MintDMC", []interface{}{hash.Hash256{}, []byte{}})
		Expect(err).To(Succeed())
		Expect(HasEvent(logs, dmcAddr, "Transfer", ZeroAddress, admin, Ether(210))).To(BeTrue())

		Expect(EnableMinter(ctx, admin, dmcAddr, admin)).To(Succeed())
		_, logs, err = ExecWithLogs(ctx, admin, dmcAddr, "Mint", []interface{}{s1, Ether(1000)})
		Expect(err).To(Succeed())
		Expect(HasEvent(logs, dmcAddr, "Transfer", ZeroAddress, s1, Ether(1000))).To(BeTrue())

		expectBalance(ctx, dmcAddr, admin, Ether(210))
		expectBalance(ctx, dmcAddr, s1, Ether(1000))
	})

	It("exchanges DMC to GWT", func() {
		_, logs, err := ExecWithLogs(ctx, s1, dmcAddr, "Approve", []interface{}{exAddr, Ether(1)})
		Expect(err).To(Succeed())
		Expect(HasEvent(logs, dmcAddr, "Approval", s1, exAddr, Ether(1))).To(BeTrue())

		is, logs, err := ExecWithLogs(ctx, s1, exAddr, "ExchangeGWT", []interface{}{Ether(1)})
		Expect(err).To(Succeed())
		Expect(is[0].(*amount.Amount).String()).To(Equal(Ether(210).String()))
		Expect(HasEvent(logs, gwtAddr, "Transfer", ZeroAddress, s1, Ether(210))).To(BeTrue())
		Expect(HasEvent(logs, dmcAddr, "Transfer", s1, exAddr, Ether(1))).To(BeTrue())

		expectBalance(ctx, gwtAddr, s1, Ether(210))
		expectBalance(ctx, dmcAddr, s1, Ether(999))
		expectBalance(ctx, dmcAddr, exAddr, Ether(1))

		allowance, err := TokenAllowance(ctx, dmcAddr, s1, exAddr)
		Expect(err).To(Succeed())
		Expect(allowance.IsZero()).To(BeTrue())
	})

	It("rejects a GWT transfer between addresses not allowed", func() {
		err := SafeTransfer(ctx, s1, gwtAddr, s2, Ether(1))
		Expect(err).To(MatchError(token.ErrTransferNotAllowed))
		Expect(err.Error()).To(Equal("transfer not allowed"))
		expectBalance(ctx, gwtAddr, s1, Ether(210))
	})

	It("transfers GWT from and to an allowed address", func() {
		_, err := Exec(ctx, admin, gwtAddr, "EnableTransfer", []interface{}{[]common.Address{s2}})
		Expect(err).To(Succeed())

		_, logs, err := ExecWithLogs(ctx, s1, gwtAddr, "Transfer", []interface{}{s2, Ether(1)})
		Expect(err).To(Succeed())
		Expect(HasEvent(logs, gwtAddr, "Transfer", s1, s2, Ether(1))).To(BeTrue())

		_, logs, err = ExecWithLogs(ctx, s2, gwtAddr, "Transfer", []interface{}{s1, Ether(1)})
		Expect(err).To(Succeed())
		Expect(HasEvent(logs, gwtAddr, "Transfer", s2, s1, Ether(1))).To(BeTrue())

		expectBalance(ctx, gwtAddr, s2, ZeroAmount)
		expectBalance(ctx, gwtAddr, s1, Ether(210))
	})

	It("exchanges GWT back to DMC", func() {
		_, logs, err := ExecWithLogs(ctx, s1, gwtAddr, "Approve", []interface{}{exAddr, Ether(210)})
		Expect(err).To(Succeed())
		Expect(HasEvent(logs, gwtAddr, "Approval", s1, exAddr, Ether(210))).To(BeTrue())

		is, logs, err := ExecWithLogs(ctx, s1, exAddr, "ExchangeDMC", []interface{}{Ether(210)})
		Expect(err).To(Succeed())
		Expect(is[0].(*amount.Amount).String()).To(Equal(Ether(1).String()))
		Expect(HasEvent(logs, gwtAddr, "Transfer", s1, ZeroAddress, Ether(210))).To(BeTrue())
		Expect(HasEvent(logs, dmcAddr, "Transfer", exAddr, s1, Ether(1))).To(BeTrue())

		expectBalance(ctx, gwtAddr, s1, ZeroAmount)
		expectBalance(ctx, dmcAddr, s1, Ether(1000))
		expectBalance(ctx, dmcAddr, exAddr, ZeroAmount)

		supply, err := TokenTotalSupply(ctx, gwtAddr)
		Expect(err).To(Succeed())
		Expect(supply.IsZero()).To(BeTrue())
	})

	It("rejects a GWT mint from an address not allowed", func() {
		_, err := Exec(ctx, s1, gwtAddr, "Mint", []interface{}{s1, Ether(1)})
		Expect(err).To(MatchError(token.ErrMintNotAllowed))
		Expect(err.Error()).To(Equal("mint not allowed"))
	})

	It("rejects a used salt", func() {
		salt := hash.Hash([]byte("salt"))
		_, err := Exec(ctx, s2, exAddr, "MintDMC", []interface{}{salt, []byte{}})
		Expect(err).To(Succeed())
		used, err := ViewBool(ctx, exAddr, "IsSaltUsed", s2, salt)
		Expect(err).To(Succeed())
		Expect(used).To(BeTrue())

		_, err = Exec(ctx, s2, exAddr, "MintDMC", []interface{}{salt, []byte{}})
		Expect(err).To(MatchError(exchange.ErrSaltAlreadyUsed))
		expectBalance(ctx, dmcAddr, s2, Ether(210))

		_, err = Exec(ctx, s1, exAddr, "MintDMC", []interface{}{salt, []byte{}})
		Expect(err).To(Succeed())
		expectBalance(ctx, dmcAddr, s1, Ether(1210))
	})
})

var _ = Describe("Exchange amounts", func() {
	var (
		ctx                      *types.Context
		dmcAddr, gwtAddr, exAddr common.Address
		alice                    common.Address
	)

	BeforeEach(func() {
		ctx, dmcAddr, gwtAddr, exAddr = deployAll()
		alice = users[2]
		Expect(EnableMinter(ctx, admin, dmcAddr, admin)).To(Succeed())
		_, err := Exec(ctx, admin, dmcAddr, "Mint", []interface{}{alice, Ether(10)})
		Expect(err).To(Succeed())
	})

	It("rejects zero and negative amounts", func() {
		Expect(TokenApprove(ctx, alice, dmcAddr, exAddr, Ether(10))).To(Succeed())
		negative := ToAmount(big.NewInt(-210))
		for _, am := range []*amount.Amount{ZeroAmount, negative} {
			_, err := Exec(ctx, alice, exAddr, "ExchangeGWT", []interface{}{am})
			Expect(err).To(MatchError(exchange.ErrInvalidExchangeAmount))
			_, err = Exec(ctx, alice, exAddr, "ExchangeDMC", []interface{}{am})
			Expect(err).To(MatchError(exchange.ErrInvalidExchangeAmount))
		}
		expectBalance(ctx, dmcAddr, alice, Ether(10))
	})

	It("spends from an unlimited allowance", func() {
		Expect(TokenApprove(ctx, alice, dmcAddr, exAddr, MaxUint256)).To(Succeed())
		_, err := Exec(ctx, alice, exAddr, "ExchangeGWT", []interface{}{Ether(1)})
		Expect(err).To(Succeed())

		allowance, err := TokenAllowance(ctx, dmcAddr, alice, exAddr)
		Expect(err).To(Succeed())
		GPrintf("allowance after exchange %v\n", allowance.String())
		Expect(allowance.String()).To(Equal(MaxUint256.Sub(Ether(1)).String()))
		expectBalance(ctx, gwtAddr, alice, Ether(210))
	})

	It("rejects a GWT amount that is not a multiple of the rate", func() {
		Expect(TokenApprove(ctx, alice, dmcAddr, exAddr, Ether(1))).To(Succeed())
		_, err := Exec(ctx, alice, exAddr, "ExchangeGWT", []interface{}{Ether(1)})
		Expect(err).To(Succeed())

		Expect(TokenApprove(ctx, alice, gwtAddr, exAddr, Ether(210))).To(Succeed())
		_, err = Exec(ctx, alice, exAddr, "ExchangeDMC", []interface{}{amount.NewAmount(0, 1)})
		Expect(err).To(MatchError(exchange.ErrInvalidExchangeAmount))
		expectBalance(ctx, gwtAddr, alice, Ether(210))
	})

	It("fails without the allowance and keeps the balances", func() {
		_, err := Exec(ctx, alice, exAddr, "ExchangeGWT", []interface{}{Ether(1)})
		Expect(err).To(MatchError(token.ErrInsufficientAllowance))
		expectBalance(ctx, dmcAddr, alice, Ether(10))
		expectBalance(ctx, gwtAddr, alice, ZeroAmount)
	})

	It("fails when the exchange does not hold enough DMC", func() {
		Expect(EnableMinter(ctx, admin, gwtAddr, admin)).To(Succeed())
		_, err := Exec(ctx, admin, gwtAddr, "Mint", []interface{}{alice, Ether(420)})
		Expect(err).To(Succeed())
		Expect(TokenApprove(ctx, alice, gwtAddr, exAddr, Ether(420))).To(Succeed())

		_, err = Exec(ctx, alice, exAddr, "ExchangeDMC", []interface{}{Ether(420)})
		Expect(err).To(MatchError(exchange.ErrInsufficientExchangeBalance))
		expectBalance(ctx, gwtAddr, alice, Ether(420))
	})

	It("fails when the exchange is not a minter of GWT", func() {
		_, err := Exec(ctx, admin, gwtAddr, "DisableMinter", []interface{}{[]common.Address{exAddr}})
		Expect(err).To(Succeed())
		Expect(TokenApprove(ctx, alice, dmcAddr, exAddr, Ether(1))).To(Succeed())

		_, err = Exec(ctx, alice, exAddr, "ExchangeGWT", []interface{}{Ether(1)})
		Expect(err).To(MatchError(token.ErrMintNotAllowed))
		expectBalance(ctx, dmcAddr, alice, Ether(10))
		expectBalance(ctx, dmcAddr, exAddr, ZeroAmount)
	})
})
