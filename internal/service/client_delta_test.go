// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/MKhiriev/go-desk-sync/internal/utils"
	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docs(items ...models.Document) *models.Collection[models.Document] {
	return models.NewCollection(items...)
}

// identityMap turns a collection into id -> canonical JSON for comparison.
func identityMap(t *testing.T, c *models.Collection[models.Document]) map[string]string {
	t.Helper()
	out := make(map[string]string, c.Len())
	for _, d := range c.Items() {
		raw, err := utils.CanonicalJSON(d)
		require.NoError(t, err)
		out[d.RecordID()] = string(raw)
	}
	return out
}

func randomCollection(r *rand.Rand) *models.Collection[models.Document] {
	n := r.IntN(8)
	items := make([]models.Document, 0, n)
	for range n {
		items = append(items, models.Document{
			"id":     fmt.Sprintf("id-%d", r.IntN(10)),
			"status": []string{"open", "closed", "pending"}[r.IntN(3)],
			"amount": r.IntN(3),
		})
	}
	return models.NewCollection(items...)
}

// ── DiffCollection ──────────────────────────────────────────────────────────

func TestDiffCollection_InsertUpdateDelete(t *testing.T) {
	prev := docs(
		models.Document{"id": "C-1", "name": "Acme"},
		models.Document{"id": "C-2", "name": "Globex"},
	)
	curr := docs(
		models.Document{"id": "C-1", "name": "Acme Corp"},
		models.Document{"id": "C-3", "name": "Initech"},
	)

	got := DiffCollection(prev, curr)

	require.Len(t, got, 3)
	assert.Equal(t, models.DeltaUpdate, got[0].Action)
	assert.Equal(t, "C-1", got[0].ID)
	assert.Equal(t, models.DeltaInsert, got[1].Action)
	assert.Equal(t, "C-3", got[1].ID)
	assert.Equal(t, models.DeltaDelete, got[2].Action)
	assert.Equal(t, "C-2", got[2].ID)
	assert.Nil(t, got[2].Record)
}

func TestDiffCollection_SameReferenceSkipped(t *testing.T) {
	c := docs(models.Document{"id": "C-1"})
	assert.Empty(t, DiffCollection(c, c))
}

func TestDiffCollection_RoundTrippedRecordEmitsNothing(t *testing.T) {
	// same values, different representation and key order
	prev := docs(models.Document{"id": "C-1", "amount": 10, "tags": []any{"a"}})
	curr := docs(models.Document{"tags": []string{"a"}, "amount": float64(10), "id": "C-1"})

	assert.Empty(t, DiffCollection(prev, curr))
}

func TestDiffCollection_NilStates(t *testing.T) {
	curr := docs(models.Document{"id": "C-1"})

	inserts := DiffCollection(nil, curr)
	require.Len(t, inserts, 1)
	assert.Equal(t, models.DeltaInsert, inserts[0].Action)

	deletes := DiffCollection(curr, nil)
	require.Len(t, deletes, 1)
	assert.Equal(t, models.DeltaDelete, deletes[0].Action)
}

// ── ApplyRecordDeltas ───────────────────────────────────────────────────────

func TestApplyDeltas_ReproducesTarget(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for i := range 500 {
		a, b := randomCollection(r), randomCollection(r)

		got := ApplyRecordDeltas(a, DiffCollection(a, b))

		require.Equal(t, identityMap(t, b), identityMap(t, got), "iteration %d", i)
	}
}

func TestApplyDeltas_Idempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))

	for i := range 200 {
		a, b := randomCollection(r), randomCollection(r)
		deltas := DiffCollection(a, b)

		once := ApplyRecordDeltas(a, deltas)
		twice := ApplyRecordDeltas(once, deltas)

		require.Equal(t, identityMap(t, once), identityMap(t, twice), "iteration %d", i)
	}
}

func TestApplyDeltas_DeleteMissingIsNoop(t *testing.T) {
	c := docs(models.Document{"id": "C-1"})

	got := ApplyRecordDeltas(c, []RecordDelta[models.Document]{{Action: models.DeltaDelete, ID: "nope"}})

	assert.Same(t, c, got)
}

func TestApplyDeltas_UnchangedUpsertKeepsReference(t *testing.T) {
	c := docs(models.Document{"id": "C-1", "n": 1})

	got := ApplyRecordDeltas(c, []RecordDelta[models.Document]{{Action: models.DeltaUpdate, ID: "C-1", Record: models.Document{"id": "C-1", "n": 1}}})

	assert.Same(t, c, got)
}

// ── ComputeDeltas ───────────────────────────────────────────────────────────

func TestComputeDeltas_OnlyWatchedCollections(t *testing.T) {
	s := NewAppState("clients", "tickets", "notes")
	prev := s.View()

	s.Upsert(models.OriginLocal, "clients", models.Document{"id": "C-1"})
	s.Upsert(models.OriginLocal, "notes", models.Document{"id": "N-1"})
	s.Upsert(models.OriginLocal, "tickets", models.Document{"id": "T-1"})

	got := ComputeDeltas(prev, s.View(), []string{"clients", "tickets"})

	require.Len(t, got, 2)
	assert.Equal(t, "clients", got[0].Collection)
	assert.Equal(t, "tickets", got[1].Collection)
	assert.Equal(t, models.DeltaInsert, got[1].Action)
	assert.Equal(t, "T-1", got[1].Data.RecordID())
}

func TestApplyWireDeltas_FillsMissingID(t *testing.T) {
	got := ApplyDeltas("clients", nil, []models.Delta{
		{Collection: "clients", Action: models.DeltaInsert, ID: "C-9", Data: models.Document{"name": "x"}},
		{Collection: "tickets", Action: models.DeltaInsert, ID: "T-1", Data: models.Document{"id": "T-1"}},
	})

	require.Equal(t, 1, got.Len())
	doc, ok := got.Get("C-9")
	require.True(t, ok)
	assert.Equal(t, "x", doc["name"])
}
