// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/builtin/token"
	"github.com/vechain/thor-staking/log"
	"github.com/vechain/thor-staking/thor"
	"github.com/vechain/thor-staking/xenv"
)

var logger = log.WithContext("pkg", "logdb")

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// a single connection keeps in-memory databases shared and serializes writes
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema + transferTableSchema); err != nil {
		return nil, errors.Wrap(err, "create tables")
	}

	driverVer, _, _ := sqlite3.Version()
	logger.Debug("log db opened", "path", path, "sqlite", driverVer)
	return &LogDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// Write stores events of a block. Token Transfer events are also indexed as transfers.
func (db *LogDB) Write(blockNumber uint32, blockTime uint64, events []*xenv.Event) error {
	return db.execInTx(func(tx *sql.Tx) error {
		var transferIndex uint32
		for i, ev := range events {
			var topics [3][]byte
			for j := 0; j < len(ev.Topics) && j < len(topics); j++ {
				topics[j] = ev.Topics[j].Bytes()
			}
			if _, err := tx.Exec("INSERT OR REPLACE INTO event(blockNumber, eventIndex, blockTime, address, topic0, topic1, topic2, data) VALUES (?, ?, ?, ?, ?, ?, ?, ?);",
				blockNumber,
				uint32(i),
				blockTime,
				ev.Address.Bytes(),
				topics[0],
				topics[1],
				topics[2],
				ev.Data,
			); err != nil {
				return err
			}

			transfer, ok := token.DecodeTransfer(ev)
			if !ok {
				continue
			}
			if _, err := tx.Exec("INSERT OR REPLACE INTO transfer(blockNumber, transferIndex, blockTime, token, sender, recipient, amount) VALUES (?, ?, ?, ?, ?, ?, ?);",
				blockNumber,
				transferIndex,
				blockTime,
				transfer.Token.Bytes(),
				transfer.From.Bytes(),
				transfer.To.Bytes(),
				transfer.Amount.Bytes(),
			); err != nil {
				return err
			}
			transferIndex++
		}
		return nil
	})
}

func (db *LogDB) execInTx(proc func(*sql.Tx) error) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func rangeClause(r *Range) (string, []any) {
	if r == nil {
		return "", nil
	}
	condition := "blockNumber"
	if r.Unit == Time {
		condition = "blockTime"
	}
	stmt := " AND " + condition + " >= ? "
	args := []any{r.From}
	if r.To >= r.From {
		stmt += " AND " + condition + " <= ? "
		args = append(args, r.To)
	}
	return stmt, args
}

func orderAndLimit(order Order, index string, opts *Options) (string, []any) {
	stmt := " ORDER BY blockNumber ASC," + index + " ASC "
	if order == DESC {
		stmt = " ORDER BY blockNumber DESC," + index + " DESC "
	}
	if opts == nil {
		return stmt, nil
	}
	return stmt + " LIMIT ?, ? ", []any{opts.Offset, opts.Limit}
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	const query = "SELECT blockNumber, eventIndex, blockTime, address, topic0, topic1, topic2, data FROM event WHERE 1"
	if filter == nil {
		return db.queryEvents(ctx, query+" ORDER BY blockNumber ASC,eventIndex ASC")
	}

	stmt, args := rangeClause(filter.Range)
	stmt = query + stmt
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Address != nil {
			args = append(args, criteria.Address.Bytes())
			stmt += " AND address = ? "
		}
		for j, topic := range criteria.Topics {
			if topic != nil {
				args = append(args, topic.Bytes())
				stmt += fmt.Sprintf(" AND topic%v = ?", j)
			}
		}
		stmt += ")"
	}
	if len(filter.CriteriaSet) > 0 {
		stmt += ")"
	}

	tail, tailArgs := orderAndLimit(filter.Order, "eventIndex", filter.Options)
	return db.queryEvents(ctx, stmt+tail, append(args, tailArgs...)...)
}

func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	const query = "SELECT blockNumber, transferIndex, blockTime, token, sender, recipient, amount FROM transfer WHERE 1"
	if filter == nil {
		return db.queryTransfers(ctx, query+" ORDER BY blockNumber ASC,transferIndex ASC")
	}

	stmt, args := rangeClause(filter.Range)
	stmt = query + stmt
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1 "
		} else {
			stmt += " OR ( 1 "
		}
		if criteria.Token != nil {
			args = append(args, criteria.Token.Bytes())
			stmt += " AND token = ? "
		}
		if criteria.Sender != nil {
			args = append(args, criteria.Sender.Bytes())
			stmt += " AND sender = ? "
		}
		if criteria.Recipient != nil {
			args = append(args, criteria.Recipient.Bytes())
			stmt += " AND recipient = ? "
		}
		stmt += ")"
	}
	if len(filter.CriteriaSet) > 0 {
		stmt += ")"
	}

	tail, tailArgs := orderAndLimit(filter.Order, "transferIndex", filter.Options)
	return db.queryTransfers(ctx, stmt+tail, append(args, tailArgs...)...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			blockNumber uint32
			index       uint32
			blockTime   uint64
			address     []byte
			topics      [3][]byte
			data        []byte
		)
		if err := rows.Scan(
			&blockNumber,
			&index,
			&blockTime,
			&address,
			&topics[0],
			&topics[1],
			&topics[2],
			&data,
		); err != nil {
			return nil, err
		}
		event := &Event{
			BlockNumber: blockNumber,
			Index:       index,
			BlockTime:   blockTime,
			Address:     thor.BytesToAddress(address),
			Data:        data,
		}
		for i, topic := range topics {
			if len(topic) > 0 {
				h := thor.BytesToBytes32(topic)
				event.Topics[i] = &h
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *LogDB) queryTransfers(ctx context.Context, stmt string, args ...any) ([]*Transfer, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*Transfer
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			blockNumber uint32
			index       uint32
			blockTime   uint64
			tokenAddr   []byte
			sender      []byte
			recipient   []byte
			amount      []byte
		)
		if err := rows.Scan(
			&blockNumber,
			&index,
			&blockTime,
			&tokenAddr,
			&sender,
			&recipient,
			&amount,
		); err != nil {
			return nil, err
		}
		transfers = append(transfers, &Transfer{
			BlockNumber: blockNumber,
			Index:       index,
			BlockTime:   blockTime,
			Token:       thor.BytesToAddress(tokenAddr),
			Sender:      thor.BytesToAddress(sender),
			Recipient:   thor.BytesToAddress(recipient),
			Amount:      new(big.Int).SetBytes(amount),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}
