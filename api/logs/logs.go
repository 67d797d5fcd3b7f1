// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logs

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/api/utils"
	"github.com/vechain/thor-staking/logdb"
	"github.com/vechain/thor-staking/thor"
)

type Logs struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Logs {
	return &Logs{
		db,
		logsLimit,
	}
}

func parseUint(query url.Values, key string) (uint64, bool, error) {
	s := query.Get(key)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, false, utils.BadRequest(errors.WithMessage(err, key))
	}
	return v, true, nil
}

func parseAddress(query url.Values, key string) (*thor.Address, error) {
	s := query.Get(key)
	if s == "" {
		return nil, nil
	}
	addr, err := thor.ParseAddress(s)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, key))
	}
	return &addr, nil
}

// parseCommon reads range, order and paging, shared by events and transfers.
func (l *Logs) parseCommon(query url.Values) (*logdb.Range, *logdb.Options, logdb.Order, error) {
	var rng *logdb.Range
	from, hasFrom, err := parseUint(query, "from")
	if err != nil {
		return nil, nil, "", err
	}
	to, hasTo, err := parseUint(query, "to")
	if err != nil {
		return nil, nil, "", err
	}
	if hasFrom || hasTo {
		unit := logdb.RangeType(query.Get("unit"))
		switch unit {
		case "":
			unit = logdb.Block
		case logdb.Block, logdb.Time:
		default:
			return nil, nil, "", utils.BadRequest(errors.Errorf("unit: unknown %q", unit))
		}
		if !hasTo {
			to = math.MaxInt64
		}
		if to > math.MaxInt64 || from > to {
			return nil, nil, "", utils.BadRequest(errors.New("range: invalid"))
		}
		rng = &logdb.Range{Unit: unit, From: from, To: to}
	}

	order := logdb.Order(query.Get("order"))
	switch order {
	case "":
		order = logdb.ASC
	case logdb.ASC, logdb.DESC:
	default:
		return nil, nil, "", utils.BadRequest(errors.Errorf("order: unknown %q", order))
	}

	offset, _, err := parseUint(query, "offset")
	if err != nil {
		return nil, nil, "", err
	}
	limit, hasLimit, err := parseUint(query, "limit")
	if err != nil {
		return nil, nil, "", err
	}
	if !hasLimit {
		limit = l.limit
	}
	if limit > l.limit {
		return nil, nil, "", utils.BadRequest(errors.Errorf("limit: exceeds the maximum allowed value of %d", l.limit))
	}
	if offset > math.MaxInt64 {
		return nil, nil, "", utils.BadRequest(errors.New("offset: too large"))
	}
	return rng, &logdb.Options{Offset: offset, Limit: limit}, order, nil
}

func (l *Logs) handleFilterEvents(w http.ResponseWriter, req *http.Request) error {
	query := req.URL.Query()
	rng, opts, order, err := l.parseCommon(query)
	if err != nil {
		return err
	}
	criteria := &logdb.EventCriteria{}
	if criteria.Address, err = parseAddress(query, "address"); err != nil {
		return err
	}
	for i := range criteria.Topics {
		key := "topic" + strconv.Itoa(i)
		if s := query.Get(key); s != "" {
			topic, err := thor.ParseBytes32(s)
			if err != nil {
				return utils.BadRequest(errors.WithMessage(err, key))
			}
			criteria.Topics[i] = &topic
		}
	}

	events, err := l.db.FilterEvents(req.Context(), &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{criteria},
		Range:       rng,
		Options:     opts,
		Order:       order,
	})
	if err != nil {
		return err
	}
	filtered := make([]*FilteredEvent, 0, len(events))
	for _, ev := range events {
		filtered = append(filtered, convertEvent(ev))
	}
	return utils.WriteJSON(w, filtered)
}

func (l *Logs) handleFilterTransfers(w http.ResponseWriter, req *http.Request) error {
	query := req.URL.Query()
	rng, opts, order, err := l.parseCommon(query)
	if err != nil {
		return err
	}
	criteria := &logdb.TransferCriteria{}
	if criteria.Token, err = parseAddress(query, "token"); err != nil {
		return err
	}
	if criteria.Sender, err = parseAddress(query, "sender"); err != nil {
		return err
	}
	if criteria.Recipient, err = parseAddress(query, "recipient"); err != nil {
		return err
	}

	transfers, err := l.db.FilterTransfers(req.Context(), &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{criteria},
		Range:       rng,
		Options:     opts,
		Order:       order,
	})
	if err != nil {
		return err
	}
	filtered := make([]*FilteredTransfer, 0, len(transfers))
	for _, tr := range transfers {
		filtered = append(filtered, convertTransfer(tr))
	}
	return utils.WriteJSON(w, filtered)
}

func (l *Logs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").
		Methods(http.MethodGet).
		Name("GET /logs/events").
		HandlerFunc(utils.WrapHandlerFunc(l.handleFilterEvents))
	sub.Path("/transfers").
		Methods(http.MethodGet).
		Name("GET /logs/transfers").
		HandlerFunc(utils.WrapHandlerFunc(l.handleFilterTransfers))
}
