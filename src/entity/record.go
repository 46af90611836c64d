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
package entity

import (
	"fmt"
	"strings"
)

// Record kinds understood by the stores and traversal phases.
// These are logical kinds; each SQL store maps them to its own tables.
const (
	KindCustomer        = "customer"
	KindCustomerAddress = "customer_address"
	KindQuote           = "quote"
	KindQuoteAddress    = "quote_address"
	KindQuotePayment    = "quote_payment"
	KindOrder           = "order"
	KindOrderAddress    = "order_address"
	KindOrderPayment    = "order_payment"
	KindOrderGrid       = "order_grid"
	KindInvoice         = "invoice"
	KindInvoiceGrid     = "invoice_grid"
	KindShipment        = "shipment"
	KindShipmentGrid    = "shipment_grid"
	KindCreditmemo      = "creditmemo"
	KindCreditmemoGrid  = "creditmemo_grid"
	KindStockAlert      = "stock_alert"
	KindPriceAlert      = "price_alert"
	KindWishlist        = "wishlist"
)

// Record is an in-memory snapshot of one store row: an ordered field set
// tagged with a logical kind and the row's identifier. Records are built by
// the store from query results, rewritten in place by the anonymizer and
// handed to a batch for persistence. They carry no connection to the store
// they came from.
type Record struct {
	kind   string
	id     int64
	order  []string
	values map[string]string
	dirty  map[string]bool
}

func NewRecord(kind string, id int64) *Record {
	return &Record{
		kind:   kind,
		id:     id,
		values: make(map[string]string),
		dirty:  make(map[string]bool),
	}
}

func (r *Record) Kind() string { return r.kind }

func (r *Record) ID() int64 { return r.id }

// Fields returns the field names in the order they were first set,
// which for store-built records is column order.
func (r *Record) Fields() []string {
	fields := make([]string, len(r.order))
	copy(fields, r.order)
	return fields
}

func (r *Record) Get(field string) (string, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Set stores a field value, preserving first-seen order. Overwriting a field
// with a different value marks it dirty; writing the value it already holds
// does not, so an idempotent rewrite produces no pending changes.
func (r *Record) Set(field, value string) {
	old, exists := r.values[field]
	if !exists {
		r.order = append(r.order, field)
	} else if old != value {
		r.dirty[field] = true
	}
	r.values[field] = value
}

// Changed returns the names of fields whose value differs from the one they
// were loaded with, in field order.
func (r *Record) Changed() []string {
	var changed []string
	for _, f := range r.order {
		if r.dirty[f] {
			changed = append(changed, f)
		}
	}
	return changed
}

// Label identifies the record in reports and logs, e.g. "order #42".
func (r *Record) Label() string {
	return fmt.Sprintf("%s #%d", r.kind, r.id)
}

// String renders the full field set, one field per line. Used for debug
// dumps of anonymized records.
func (r *Record) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s #%d:\n", r.kind, r.id)
	for _, f := range r.order {
		fmt.Fprintf(&sb, "  %s: %s\n", f, r.values[f])
	}
	return sb.String()
}
