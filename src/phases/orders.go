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
package phases

import (
	"github.com/groggu/MagentoAnon/src/anonymize"
	"github.com/groggu/MagentoAnon/src/batch"
	"github.com/groggu/MagentoAnon/src/entity"
	"github.com/groggu/MagentoAnon/src/store"
)

// ordersPhase anonymizes every quote and order matching (store, email):
// the quote/order itself, its addresses, its payments and its grid rows.
// Invoices, shipments and credit memos are documents of record and stay
// untouched; only their grid projections are rewritten.
//
// Orders exist without a customer profile (guest checkout), so a missing
// customer does not block this phase: the quote or order id becomes the
// scope token instead.
func (r *Runner) ordersPhase() error {
	r.reporter.Alertf("Process order data for %s", r.cfg.Email)

	cust, err := r.lookupCustomer()
	if err != nil {
		return err
	}
	var token anonymize.Token
	if cust != nil {
		token = anonymize.Token(cust.ID())
	}

	b := batch.New("orders")
	scopeFilter := store.Filter{"store_id": r.cfg.Scope.StoreID, "customer_email": r.cfg.Email}

	quotes, err := r.store.FetchRelated(entity.KindQuote, scopeFilter)
	if err != nil {
		return err
	}
	for _, quote := range quotes {
		if cust == nil {
			token = anonymize.Token(quote.ID())
		}
		r.reporter.Alertf("Found quote id %d", quote.ID())
		r.anonymizeInto(b, quote, token)

		if err := r.anonymizeRelated(b, entity.KindQuoteAddress, store.Filter{"quote_id": quote.ID()}, token); err != nil {
			return err
		}
		if err := r.anonymizeRelated(b, entity.KindQuotePayment, store.Filter{"quote_id": quote.ID()}, token); err != nil {
			return err
		}
	}
	r.reporter.Alertf("Anonymized %d order quotes", len(quotes))

	orders, err := r.store.FetchRelated(entity.KindOrder, scopeFilter)
	if err != nil {
		return err
	}
	for _, order := range orders {
		if cust == nil {
			token = anonymize.Token(order.ID())
		}
		incrementID, _ := order.Get("increment_id")
		r.reporter.Alertf("Found order %s", incrementID)
		r.anonymizeInto(b, order, token)

		if err := r.anonymizeRelated(b, entity.KindOrderAddress, store.Filter{"parent_id": order.ID()}, token); err != nil {
			return err
		}

		payments, err := r.store.FetchRelated(entity.KindOrderPayment, store.Filter{"parent_id": order.ID()})
		if err != nil {
			return err
		}
		for _, payment := range payments {
			r.anonymizeInto(b, payment, token)
		}
		r.reporter.Alertf("Anonymized %d payment records", len(payments))

		if err := r.anonymizeRelated(b, entity.KindOrderGrid, store.Filter{"entity_id": order.ID()}, token); err != nil {
			return err
		}

		if err := r.anonymizeDocumentGrids(b, order.ID(), entity.KindInvoice, entity.KindInvoiceGrid, "invoices", token); err != nil {
			return err
		}
		if err := r.anonymizeDocumentGrids(b, order.ID(), entity.KindShipment, entity.KindShipmentGrid, "shipments", token); err != nil {
			return err
		}
		if err := r.anonymizeDocumentGrids(b, order.ID(), entity.KindCreditmemo, entity.KindCreditmemoGrid, "credit memos", token); err != nil {
			return err
		}
	}
	r.reporter.Alertf("Anonymized %d orders", len(orders))

	if err := r.commit(b, "orders"); err != nil {
		return err
	}
	r.reporter.Alertf("Order data for %s anonymized\n", r.cfg.Email)
	return nil
}

// anonymizeRelated fetches every record of the kind matching the filter and
// queues it for update with the phase token.
func (r *Runner) anonymizeRelated(b *batch.Batch, kind string, filter store.Filter, token anonymize.Token) error {
	recs, err := r.store.FetchRelated(kind, filter)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		r.anonymizeInto(b, rec, token)
	}
	return nil
}

// anonymizeDocumentGrids walks the aggregate documents of one order (invoice,
// shipment or credit memo) and rewrites only their grid projection rows. The
// documents themselves are dumped for debugging but never modified.
func (r *Runner) anonymizeDocumentGrids(b *batch.Batch, orderID int64, docKind, gridKind, label string, token anonymize.Token) error {
	docs, err := r.store.FetchRelated(docKind, store.Filter{"order_id": orderID})
	if err != nil {
		return err
	}
	count := 0
	for _, doc := range docs {
		r.reporter.Dump(doc)

		grids, err := r.store.FetchRelated(gridKind, store.Filter{"entity_id": doc.ID()})
		if err != nil {
			return err
		}
		for _, grid := range grids {
			r.anonymizeInto(b, grid, token)
			count++
		}
	}
	if len(docs) > 0 {
		r.reporter.Alertf("Anonymized %d %s", count, label)
	}
	return nil
}
