// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChangeCursor_After(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b ChangeCursor
		want bool
	}{
		{name: "later time", a: ChangeCursor{At: t0.Add(time.Microsecond)}, b: ChangeCursor{At: t0, Collection: "z", ID: "z"}, want: true},
		{name: "earlier time", a: ChangeCursor{At: t0, Collection: "z"}, b: ChangeCursor{At: t0.Add(time.Microsecond)}, want: false},
		{name: "same time, later collection", a: ChangeCursor{At: t0, Collection: "tickets", ID: "A"}, b: ChangeCursor{At: t0, Collection: "clients", ID: "Z"}, want: true},
		{name: "same time and collection, later id", a: ChangeCursor{At: t0, Collection: "clients", ID: "C-2"}, b: ChangeCursor{At: t0, Collection: "clients", ID: "C-10"}, want: true},
		{name: "byte order, upper before lower", a: ChangeCursor{At: t0, Collection: "clients", ID: "a"}, b: ChangeCursor{At: t0, Collection: "clients", ID: "Z"}, want: true},
		{name: "equal", a: ChangeCursor{At: t0, Collection: "clients", ID: "C-1"}, b: ChangeCursor{At: t0, Collection: "clients", ID: "C-1"}, want: false},
		{name: "same instant, different zone", a: ChangeCursor{At: t0.In(time.FixedZone("X", 3600)), Collection: "clients", ID: "C-1"}, b: ChangeCursor{At: t0, Collection: "clients", ID: "C-1"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.After(tt.b))
		})
	}
}
