// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-desk-sync/internal/utils"
	"github.com/MKhiriev/go-desk-sync/models"
)

// RecordDelta is a typed record-level change inside one collection.
type RecordDelta[T models.Record] struct {
	Action models.DeltaAction
	ID     string
	Record T
}

// DiffCollection compares two states of one collection by identity map.
// Records present only in curr are inserts, records whose canonical JSON
// differs are updates, and records present only in prev are deletes. Inserts
// and updates follow curr order, deletes follow prev order. Reference-identical
// states produce nothing.
func DiffCollection[T models.Record](prev, curr *models.Collection[T]) []RecordDelta[T] {
	if prev == curr {
		return nil
	}

	var out []RecordDelta[T]
	for _, rec := range curr.Items() {
		id := rec.RecordID()
		old, ok := prev.Get(id)
		switch {
		case !ok:
			out = append(out, RecordDelta[T]{Action: models.DeltaInsert, ID: id, Record: rec})
		case !utils.JSONEqual(old, rec):
			out = append(out, RecordDelta[T]{Action: models.DeltaUpdate, ID: id, Record: rec})
		}
	}

	for _, rec := range prev.Items() {
		id := rec.RecordID()
		if _, ok := curr.Get(id); !ok {
			var zero T
			out = append(out, RecordDelta[T]{Action: models.DeltaDelete, ID: id, Record: zero})
		}
	}

	return out
}

// ApplyRecordDeltas returns c with deltas applied by id. Applying the same
// delta twice has the same result as applying it once, and deleting a
// missing id is a no-op.
func ApplyRecordDeltas[T models.Record](c *models.Collection[T], deltas []RecordDelta[T]) *models.Collection[T] {
	if c == nil {
		c = models.NewCollection[T]()
	}
	for _, d := range deltas {
		switch d.Action {
		case models.DeltaInsert, models.DeltaUpdate:
			if old, ok := c.Get(d.ID); ok && utils.JSONEqual(old, d.Record) {
				continue
			}
			c = c.Upsert(d.Record)
		case models.DeltaDelete:
			if _, ok := c.Get(d.ID); ok {
				c = c.Remove(d.ID)
			}
		}
	}
	return c
}

// ComputeDeltas diffs every watched collection of two state views and
// returns wire deltas in collection order. It never fails.
func ComputeDeltas(prev, curr StateView, watched []string) []models.Delta {
	var out []models.Delta
	for _, name := range watched {
		for _, d := range DiffCollection(prev.Collection(name), curr.Collection(name)) {
			delta := models.Delta{Collection: name, Action: d.Action, ID: d.ID}
			if d.Action != models.DeltaDelete {
				delta.Data = d.Record
			}
			out = append(out, delta)
		}
	}
	return out
}

// ApplyDeltas applies wire deltas of one collection to c. Deltas for other
// collections are ignored.
func ApplyDeltas(name string, c *models.Collection[models.Document], deltas []models.Delta) *models.Collection[models.Document] {
	typed := make([]RecordDelta[models.Document], 0, len(deltas))
	for _, d := range deltas {
		if d.Collection != name {
			continue
		}
		rd := RecordDelta[models.Document]{Action: d.Action, ID: d.ID}
		if d.Action != models.DeltaDelete {
			rd.Record = withID(d.Data, d.ID)
		}
		typed = append(typed, rd)
	}
	return ApplyRecordDeltas(c, typed)
}

// withID makes sure a document carries the id its delta names.
func withID(doc models.Document, id string) models.Document {
	if doc.RecordID() == id {
		return doc
	}
	out := doc.Clone()
	if out == nil {
		out = models.Document{}
	}
	out[models.IDField] = id
	return out
}
