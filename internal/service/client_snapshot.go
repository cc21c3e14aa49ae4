// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-desk-sync/models"
)

// AssembleSnapshot builds one backup object from the watched collections and
// the scalar settings of view. Every watched collection is present, empty
// ones included, so a restore of the result overwrites all of them.
func AssembleSnapshot(view StateView, watched []string) models.Snapshot {
	collections := make(map[string][]models.Document, len(watched))
	for _, name := range watched {
		items := view.Collection(name).Items()
		docs := make([]models.Document, len(items))
		for i, doc := range items {
			docs[i] = doc.Clone()
		}
		collections[name] = docs
	}

	return models.Snapshot{
		Collections: collections,
		Settings:    view.Settings(),
	}
}

// restorableCollections limits a pulled snapshot to the watched collections.
// Watched collections missing from the snapshot restore as empty.
func restorableCollections(s models.Snapshot, watched []string) map[string][]models.Document {
	out := make(map[string][]models.Document, len(watched))
	for _, name := range watched {
		out[name] = s.Collections[name]
	}
	return out
}
