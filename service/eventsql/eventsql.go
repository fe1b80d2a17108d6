package eventsql

import (
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/meverselabs/dmcexchange/common"
	"github.com/meverselabs/dmcexchange/common/hash"
	"github.com/meverselabs/dmcexchange/contract/token"
	"github.com/meverselabs/dmcexchange/core/chain"
	"github.com/meverselabs/dmcexchange/core/types"
	"github.com/pkg/errors"
)

const createTable = `CREATE TABLE IF NOT EXISTS token_events (
	height INTEGER NOT NULL,
	log_index INTEGER NOT NULL,
	tx_hash VARCHAR(66) NOT NULL,
	token VARCHAR(42) NOT NULL,
	event VARCHAR(16) NOT NULL,
	from_addr VARCHAR(42) NOT NULL,
	to_addr VARCHAR(42) NOT NULL,
	amount VARCHAR(96) NOT NULL,
	PRIMARY KEY (height, log_index)
)`

// EventSQL mirrors the Transfer and Approval logs into a sql table
type EventSQL struct {
	types.ServiceBase
	sync.Mutex
	db *sql.DB
}

// EventRow is a row of the token_events table
type EventRow struct {
	Height   uint32 `json:"height"`
	LogIndex uint32 `json:"logIndex"`
	TxHash   string `json:"txHash"`
	Token    string `json:"token"`
	Event    string `json:"event"`
	From     string `json:"from"`
	To       string `json:"to"`
	Amount   string `json:"amount"`
}

// NewEventSQL opens the database of the driver ("mysql" or any registered database/sql driver)
// and creates the table when it does not exist
func NewEventSQL(driver string, dsn string) (*EventSQL, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, errors.WithStack(err)
	}
	return &EventSQL{db: db}, nil
}

// Name returns the name of the service
func (s *EventSQL) Name() string {
	return "dmcexchange.eventsql"
}

// Close closes the database
func (s *EventSQL) Close() error {
	return s.db.Close()
}

// OnTransactionExecuted inserts the token logs of the receipt
func (s *EventSQL) OnTransactionExecuted(tx *types.Transaction, receipt *types.Receipt) error {
	s.Lock()
	defer s.Unlock()

	return s.insertReceipt(receipt)
}

// Sync inserts the token logs of the stored receipts after the last inserted height
func (s *EventSQL) Sync(st *chain.Store) error {
	s.Lock()
	defer s.Unlock()

	from, err := s.Height()
	if err != nil {
		return err
	}
	for h := from + 1; h <= st.Height(); h++ {
		TxHash, err := st.TxHash(h)
		if err != nil {
			return err
		}
		receipt, err := st.Receipt(TxHash)
		if err != nil {
			return err
		}
		if err := s.insertReceipt(receipt); err != nil {
			return err
		}
	}
	return nil
}

// Height returns the highest height in the table
func (s *EventSQL) Height() (uint32, error) {
	var h sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(height) FROM token_events").Scan(&h); err != nil {
		return 0, errors.WithStack(err)
	}
	if !h.Valid {
		return 0, nil
	}
	return uint32(h.Int64), nil
}

func (s *EventSQL) insertReceipt(receipt *types.Receipt) error {
	if len(receipt.Logs) == 0 {
		return nil
	}
	dbtx, err := s.db.Begin()
	if err != nil {
		return errors.WithStack(err)
	}
	stmt, err := dbtx.Prepare("INSERT INTO token_events (height, log_index, tx_hash, token, event, from_addr, to_addr, amount) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		dbtx.Rollback()
		return errors.WithStack(err)
	}
	defer stmt.Close()

	for _, l := range receipt.Logs {
		name := "Transfer"
		ev, err := token.ParseTransferLog(l)
		if err != nil {
			name = "Approval"
			if ev, err = token.ParseApprovalLog(l); err != nil {
				continue
			}
		}
		if _, err := stmt.Exec(receipt.Height, l.Index, receipt.TxHash.String(), ev.Token.String(), name, ev.From.String(), ev.To.String(), ev.Amount.Int.String()); err != nil {
			dbtx.Rollback()
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(dbtx.Commit())
}

// Events returns the latest events from or to the address, newest first
func (s *EventSQL) Events(addr common.Address, limit int) ([]*EventRow, error) {
	rows, err := s.db.Query("SELECT height, log_index, tx_hash, token, event, from_addr, to_addr, amount FROM token_events WHERE from_addr = ? OR to_addr = ? ORDER BY height DESC, log_index DESC LIMIT ?", addr.String(), addr.String(), limit)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// TxEvents returns the events of the transaction in the log order
func (s *EventSQL) TxEvents(TxHash hash.Hash256) ([]*EventRow, error) {
	rows, err := s.db.Query("SELECT height, log_index, tx_hash, token, event, from_addr, to_addr, amount FROM token_events WHERE tx_hash = ? ORDER BY log_index", TxHash.String())
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()
	return scanRows(rows)
}

func scanRows(rows *sql.Rows) ([]*EventRow, error) {
	list := []*EventRow{}
	for rows.Next() {
		r := &EventRow{}
		if err := rows.Scan(&r.Height, &r.LogIndex, &r.TxHash, &r.Token, &r.Event, &r.From, &r.To, &r.Amount); err != nil {
			return nil, errors.WithStack(err)
		}
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return list, nil
}
