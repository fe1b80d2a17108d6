package eventsql

import (
	"math/big"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/meverselabs/dmcexchange/cmd/app"
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/amount"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/meverselabs/dmcexchange/common/key"
	"github.com/meverselabs/dmcexchange/core/backend"
	_ "github.com/meverselabs/dmcexchange/core/backend/memory_driver"
	"github.com/meverselabs/dmcexchange/core/chain"
	"github.com/meverselabs/dmcexchange/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testChainID = big.NewInt(1)

func execTx(t *testing.T, cn *chain.Chain, k key.Key, to common.Address, method string, args ...interface{}) *types.Receipt {
	tx, err := types.NewTransaction(testChainID, cn.Seq(k.Address())+1, 0, to, method, args...)
	require.NoError(t, err)
	sig, err := k.Sign(tx.Hash())
	require.NoError(t, err)
	rc, _ := cn.ExecuteTransaction(tx, sig)
	require.NotNil(t, rc)
	return rc
}

func TestEventSQL(t *testing.T) {
	admin, err := key.NewMemoryKey()
	require.NoError(t, err)
	user, err := key.NewMemoryKey()
	require.NoError(t, err)

	db, err := backend.Create("memory", "")
	require.NoError(t, err)
	st, err := chain.NewStore(db, testChainID)
	require.NoError(t, err)
	cn := chain.NewChain(st)
	ctd, dep, err := app.Genesis(testChainID, admin.Address())
	require.NoError(t, err)
	require.NoError(t, cn.Init(ctd))
	defer cn.Close()

	dsn := filepath.Join(t.TempDir(), "events.db")
	s, err := NewEventSQL("sqlite3", dsn)
	require.NoError(t, err)
	cn.MustAddService(s)

	rc := execTx(t, cn, user, dep.Exchange, "MintDMC", hash.Hash256{}, []byte{})
	require.True(t, rc.Succeeded(), rc.Err)
	rc = execTx(t, cn, user, dep.DMC, "Approve", dep.Exchange, amount.NewAmount(1, 0))
	require.True(t, rc.Succeeded(), rc.Err)
	approveHash := rc.TxHash
	rc = execTx(t, cn, user, dep.DMC, "Transfer", common.ZeroAddr, amount.NewAmount(1, 0))
	require.False(t, rc.Succeeded())

	h, err := s.Height()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), h)

	rows, err := s.Events(user.Address(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Approval", rows[0].Event)
	assert.Equal(t, dep.Exchange.String(), rows[0].To)
	assert.Equal(t, "Transfer", rows[1].Event)
	assert.Equal(t, common.ZeroAddr.String(), rows[1].From)
	assert.Equal(t, amount.NewAmount(210, 0).Int.String(), rows[1].Amount)

	rows, err = s.TxEvents(approveHash)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, dep.DMC.String(), rows[0].Token)
	require.NoError(t, s.Close())

	synced, err := NewEventSQL("sqlite3", filepath.Join(t.TempDir(), "synced.db"))
	require.NoError(t, err)
	defer synced.Close()
	require.NoError(t, synced.Sync(st))
	rows, err = synced.Events(user.Address(), 10)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	require.NoError(t, synced.Sync(st))
}
