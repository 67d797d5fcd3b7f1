// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// create a table for event
const eventTableSchema = `
create table if not exists event (
	blockNumber integer,
	eventIndex integer,
	blockTime integer,
	address blob(20),
	topic0 blob(32),
	topic1 blob(32),
	topic2 blob(32),
	data blob,
	primary key (blockNumber, eventIndex)
);

create index if not exists eventBlockTimeIndex on event(blockTime);
create index if not exists eventAddressIndex on event(address);
create index if not exists eventTopic0Index on event(topic0);
create index if not exists eventTopic1Index on event(topic1);
`

// create a table for token transfer
const transferTableSchema = `
create table if not exists transfer (
	blockNumber integer,
	transferIndex integer,
	blockTime integer,
	token blob(20),
	sender blob(20),
	recipient blob(20),
	amount blob(32),
	primary key (blockNumber, transferIndex)
);

create index if not exists transferBlockTimeIndex on transfer(blockTime);
create index if not exists transferTokenIndex on transfer(token);
create index if not exists transferSenderIndex on transfer(sender);
create index if not exists transferRecipientIndex on transfer(recipient);
`
