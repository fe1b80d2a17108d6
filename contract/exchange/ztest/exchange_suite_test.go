package test

import (
	"math/big"
	"testing"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/key"
	"github.com/meverselabs/dmcexchange/contract/dmc"
	"github.com/meverselabs/dmcexchange/contract/exchange"
	"github.com/meverselabs/dmcexchange/contract/gwt"
	"github.com/meverselabs/dmcexchange/core/types"

	. "github.com/meverselabs/dmcexchange/contract/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestExchange(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Exchange Suite")
}

var (
	classMap = map[string]uint64{}

	adminKey key.Key
	admin    common.Address
	usersKey []key.Key
	users    []common.Address

	_Cap = amount.NewAmount(1000000000, 0)
)

var _ = BeforeSuite(func() {
	classMap["DMC"] = types.MustRegisterContractType(&dmc.DMCContract{})
	classMap["GWT"] = types.MustRegisterContractType(&gwt.GWTContract{})
	classMap["Exchange"] = types.MustRegisterContractType(&exchange.ExchangeContract{})
	classMap["ExchangeV2"] = types.MustRegisterContractType(&exchangeV2{})
	classMap["NotUpgradeable"] = types.MustRegisterContractType(&notProxiable{})

	var err error
	adminKey, admin, usersKey, users, err = Accounts(4)
	Expect(err).To(Succeed())
})

// deployAll deploys the tokens and the exchange and enables the exchange as the minter of both tokens
func deployAll() (*types.Context, common.Address, common.Address, common.Address) {
	ctx := types.NewContext(types.NewEmptyLoader(big.NewInt(1)))

	dmcAddr, err := DeployDMC(ctx, classMap["DMC"], admin, _Cap)
	Expect(err).To(Succeed())
	gwtAddr, err := DeployGWT(ctx, classMap["GWT"], admin)
	Expect(err).To(Succeed())
	exAddr, err := DeployExchange(ctx, classMap["Exchange"], admin, dmcAddr, gwtAddr)
	Expect(err).To(Succeed())

	Expect(EnableMinter(ctx, admin, gwtAddr, exAddr)).To(Succeed())
	Expect(EnableMinter(ctx, admin, dmcAddr, exAddr)).To(Succeed())
	return ctx, dmcAddr, gwtAddr, exAddr
}

func expectBalance(ctx *types.Context, tokenAddr common.Address, addr common.Address, expected *amount.Amount) {
	bal, err := TokenBalanceOf(ctx, tokenAddr, addr)
	ExpectWithOffset(1, err).To(Succeed())
	ExpectWithOffset(1, bal.String()).To(Equal(expected.String()))
}
