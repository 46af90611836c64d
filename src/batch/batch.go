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

// Package batch accumulates pending store operations for one phase and
// commits them as a single unit. A batch is the only path by which the
// external store gets mutated; in dry-run mode Commit never reaches the
// store at all and only the report survives.
package batch

import (
	log "github.com/sirupsen/logrus"

	"github.com/groggu/MagentoAnon/src/entity"
	"github.com/groggu/MagentoAnon/src/store"
)

// Entry is one line of a batch report: what would (or did) happen to which
// record.
type Entry struct {
	Op   store.OpKind
	Kind string
	ID   int64
}

type Batch struct {
	phase string
	ops   []store.Operation
}

// New creates an empty batch for the named phase. The phase name only
// appears in errors and logs.
func New(phase string) *Batch {
	return &Batch{phase: phase}
}

func (b *Batch) Update(rec *entity.Record) {
	b.ops = append(b.ops, store.Operation{Kind: store.OpUpdate, Record: rec})
}

func (b *Batch) Delete(rec *entity.Record) {
	b.ops = append(b.ops, store.Operation{Kind: store.OpDelete, Record: rec})
}

func (b *Batch) Size() int {
	return len(b.ops)
}

// Report lists the queued operations in queue order.
func (b *Batch) Report() []Entry {
	entries := make([]Entry, len(b.ops))
	for i, op := range b.ops {
		entries[i] = Entry{Op: op.Kind, Kind: op.Record.Kind(), ID: op.Record.ID()}
	}
	return entries
}

// Counts returns the number of queued updates and deletes.
func (b *Batch) Counts() (updates, deletes int) {
	for _, op := range b.ops {
		if op.Kind == store.OpUpdate {
			updates++
		} else {
			deletes++
		}
	}
	return updates, deletes
}

// Commit hands the queued operations to the store as one atomic unit. With
// dryRun set, the store is never called and Commit always succeeds. A store
// failure comes back as a *store.PersistenceError; the caller is expected to
// treat it as fatal for the whole run.
func (b *Batch) Commit(st store.Store, dryRun bool) error {
	if dryRun {
		log.Infof("dry run: skipping commit of %d operations for %s phase", len(b.ops), b.phase)
		return nil
	}
	if len(b.ops) == 0 {
		return nil
	}
	log.Infof("committing %d operations for %s phase", len(b.ops), b.phase)
	if err := st.CommitBatch(b.ops); err != nil {
		return &store.PersistenceError{Phase: b.phase, Err: err}
	}
	return nil
}
