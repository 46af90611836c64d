/*
Copyright (c) MagentoAnon Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package store

import (
	"errors"
	"fmt"

	"github.com/groggu/MagentoAnon/src/entity"
)

// ErrNotFound is returned by lookups that legitimately match nothing.
// Callers decide whether that is fatal; for customer lookups it usually
// is not (guest checkout).
var ErrNotFound = errors.New("record not found")

// OpKind says what a queued operation does to its record on commit.
type OpKind int

const (
	OpUpdate OpKind = iota
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return fmt.Sprintf("opkind(%d)", int(k))
}

// Operation is one pending write: update the record's changed fields or
// delete the record outright.
type Operation struct {
	Kind   OpKind
	Record *entity.Record
}

// Filter is a conjunction of field = value conditions applied to a fetch.
type Filter map[string]any

// Scope is a resolved website: the identifiers a run operates under.
type Scope struct {
	WebsiteID   int64
	WebsiteName string
	StoreID     int64
}

// Store is the external entity store the traversal phases run against. The
// phases treat it as opaque: they only see logical record kinds and never a
// table name. CommitBatch has all-or-nothing semantics; the store never
// observes a partial write from one batch.
type Store interface {
	// ResolveWebsite maps a website code to its scope identifiers.
	// Returns ErrNotFound for an unknown code.
	ResolveWebsite(code string) (Scope, error)

	// LookupCustomer fetches the customer record for an email within a
	// website. Returns ErrNotFound when no such customer exists.
	LookupCustomer(email string, websiteID int64) (*entity.Record, error)

	// FetchRelated returns every record of the given kind matching the
	// filter, in id order. An empty result is not an error.
	FetchRelated(kind string, filter Filter) ([]*entity.Record, error)

	// CommitBatch applies the supplied operations as one atomic unit.
	CommitBatch(ops []Operation) error
}

// PersistenceError wraps a failed batch commit. It is fatal for the whole
// run: the orchestrator halts as soon as one surfaces.
type PersistenceError struct {
	Phase string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("committing %s batch: %s", e.Phase, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
