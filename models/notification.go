// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ChangeOrigin tells state observers where a mutation came from.
type ChangeOrigin string

const (
	// OriginLocal marks a genuine edit made in this process.
	OriginLocal ChangeOrigin = "local"

	// OriginRemote marks data applied from the remote store. Observers must
	// not push it back.
	OriginRemote ChangeOrigin = "remote"
)

// SubscriptionScope bounds what a live subscription receives.
type SubscriptionScope struct {
	// Collections limits notifications to these collection names. Empty
	// means every collection.
	Collections []string `json:"collections,omitempty"`
}

// Includes reports whether the scope covers collection.
func (s SubscriptionScope) Includes(collection string) bool {
	if len(s.Collections) == 0 {
		return true
	}
	for _, c := range s.Collections {
		if c == collection {
			return true
		}
	}
	return false
}

// ChangeNotification is one remote change pushed to subscribers.
type ChangeNotification struct {
	// Origin is the session identifier of the process that made the write.
	Origin string `json:"origin"`

	// Change is the record-level change.
	Change Delta `json:"change"`

	// At is the server timestamp of the write. It feeds the sync cursor.
	At time.Time `json:"at"`
}

// Cursor returns the change log position of n.
func (n ChangeNotification) Cursor() ChangeCursor {
	return ChangeCursor{At: n.At, Collection: n.Change.Collection, ID: n.Change.ID}
}

// ChangeCursor is a position in the server change log. The log is ordered by
// (At, Collection, ID), so a cursor stays exact when many writes share one
// timestamp.
type ChangeCursor struct {
	At         time.Time `json:"at"`
	Collection string    `json:"collection,omitempty"`
	ID         string    `json:"id,omitempty"`
}

// After reports whether c is strictly later than o in log order.
func (c ChangeCursor) After(o ChangeCursor) bool {
	if !c.At.Equal(o.At) {
		return c.At.After(o.At)
	}
	if c.Collection != o.Collection {
		return c.Collection > o.Collection
	}
	return c.ID > o.ID
}

// ChangeSet is one page of a catch-up pull, oldest first. More is set when
// the server holds further changes after the last one in the page.
type ChangeSet struct {
	Changes []ChangeNotification `json:"changes"`
	Length  int                  `json:"length"`
	More    bool                 `json:"more"`
}
