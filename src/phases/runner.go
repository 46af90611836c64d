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

// Package phases walks the record graph of one customer and queues every
// rewrite or removal into per-phase batches. Phases run strictly one after
// another; each owns exactly one commit against the store, so a fatal
// failure leaves earlier phases committed and later phases never started.
package phases

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/groggu/MagentoAnon/src/anonymize"
	"github.com/groggu/MagentoAnon/src/batch"
	"github.com/groggu/MagentoAnon/src/entity"
	"github.com/groggu/MagentoAnon/src/report"
	"github.com/groggu/MagentoAnon/src/store"
)

// Action selects which phases a run performs.
type Action int

const (
	ActionHelp Action = iota
	ActionCustomerOnly
	ActionOrdersOnly
	ActionWishlistsOnly
	ActionAlertsOnly
	ActionMiscOnly
	ActionAll
)

func (a Action) String() string {
	switch a {
	case ActionHelp:
		return "help"
	case ActionCustomerOnly:
		return "customer"
	case ActionOrdersOnly:
		return "orders"
	case ActionWishlistsOnly:
		return "wishlist"
	case ActionAlertsOnly:
		return "alerts"
	case ActionMiscOnly:
		return "misc"
	case ActionAll:
		return "all"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Config is the resolved entry contract for a run: everything is validated
// and the website scope already resolved before a Runner sees it.
type Config struct {
	Action Action
	Email  string
	Scope  store.Scope
	DryRun bool
}

// Result summarizes one committed (or dry-run) phase.
type Result struct {
	Phase   string
	Updates int
	Deletes int
	DryRun  bool
}

// Runner executes the phases selected by the action, in order. It caches the
// customer lookup across phases; nothing else is shared between them.
type Runner struct {
	cfg      Config
	store    store.Store
	reporter *report.Reporter

	customer       *entity.Record
	customerLooked bool

	results []Result
}

func NewRunner(cfg Config, st store.Store, rep *report.Reporter) *Runner {
	return &Runner{cfg: cfg, store: st, reporter: rep}
}

// Run performs every phase the configured action selects. It stops at the
// first persistence failure: phases already committed stay committed and
// later phases never run.
func (r *Runner) Run() ([]Result, error) {
	log.Infof("starting %s run for %s on website %q (store %d, dry-run %v)",
		r.cfg.Action, r.cfg.Email, r.cfg.Scope.WebsiteName, r.cfg.Scope.StoreID, r.cfg.DryRun)

	var steps []func() error
	switch r.cfg.Action {
	case ActionAll, ActionCustomerOnly:
		steps = []func() error{r.customerPhase, r.ordersPhase, r.alertsPhase, r.wishlistPhase}
	case ActionOrdersOnly:
		steps = []func() error{r.ordersPhase}
	case ActionWishlistsOnly:
		steps = []func() error{r.wishlistPhase}
	case ActionAlertsOnly:
		steps = []func() error{r.alertsPhase}
	case ActionMiscOnly:
		steps = []func() error{r.alertsPhase, r.wishlistPhase}
	default:
		return nil, fmt.Errorf("action %s performs no phases", r.cfg.Action)
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return r.results, err
		}
	}

	r.reporter.Alertf("\nProcessing completed for email address %s on website %s",
		r.cfg.Email, r.cfg.Scope.WebsiteName)
	return r.results, nil
}

// lookupCustomer resolves and caches the customer record. A missing customer
// is a legitimate outcome (guest data, already removed) and comes back as
// (nil, nil) after alerting; only store failures are errors. The orders-only
// action never consults the customer at all.
func (r *Runner) lookupCustomer() (*entity.Record, error) {
	if r.cfg.Action == ActionOrdersOnly {
		return nil, nil
	}
	if r.customerLooked {
		return r.customer, nil
	}
	r.customerLooked = true

	cust, err := r.store.LookupCustomer(r.cfg.Email, r.cfg.Scope.WebsiteID)
	if errors.Is(err, store.ErrNotFound) {
		log.Warnf("no customer with email address %s on website %d", r.cfg.Email, r.cfg.Scope.WebsiteID)
		r.reporter.Forcef("Error - no customer with email address %s in database", r.cfg.Email)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up customer %s: %w", r.cfg.Email, err)
	}
	r.reporter.Alertf("\nCustomer with email address %s in database", r.cfg.Email)
	r.customer = cust
	return cust, nil
}

// commit finalizes one phase batch: commit (or skip on dry run), alert the
// test-mode line, and record the result.
func (r *Runner) commit(b *batch.Batch, phase string) error {
	if err := b.Commit(r.store, r.cfg.DryRun); err != nil {
		return err
	}
	if r.cfg.DryRun {
		r.reporter.Alertf("TEST MODE - no data changed")
	}
	updates, deletes := b.Counts()
	r.results = append(r.results, Result{Phase: phase, Updates: updates, Deletes: deletes, DryRun: r.cfg.DryRun})
	return nil
}

// anonymizeInto rewrites the record with the token, queues it for update and
// debug-dumps it.
func (r *Runner) anonymizeInto(b *batch.Batch, rec *entity.Record, token anonymize.Token) {
	anonymize.Anonymize(rec, token)
	b.Update(rec)
	r.reporter.Dump(rec)
}
