// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage of the builtin contracts.
// It follows the flow as bellow:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ commit (batch) ]
//	         |
//	    [ lru cache ]
//	         |
//	     [ kv store ]
//
// Every top level call runs between NewCheckpoint and either RevertTo or
// nothing, so a failed call leaves no trace in the journal.
package state
