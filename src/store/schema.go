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
	"fmt"

	"github.com/groggu/MagentoAnon/src/entity"
)

// tableInfo binds a logical record kind to its Magento 1 table and primary
// key column.
type tableInfo struct {
	table string
	idCol string
}

var tables = map[string]tableInfo{
	entity.KindCustomer:        {"customer_entity", "entity_id"},
	entity.KindCustomerAddress: {"customer_address_entity", "entity_id"},
	entity.KindQuote:           {"sales_flat_quote", "entity_id"},
	entity.KindQuoteAddress:    {"sales_flat_quote_address", "address_id"},
	entity.KindQuotePayment:    {"sales_flat_quote_payment", "payment_id"},
	entity.KindOrder:           {"sales_flat_order", "entity_id"},
	entity.KindOrderAddress:    {"sales_flat_order_address", "entity_id"},
	entity.KindOrderPayment:    {"sales_flat_order_payment", "entity_id"},
	entity.KindOrderGrid:       {"sales_flat_order_grid", "entity_id"},
	entity.KindInvoice:         {"sales_flat_invoice", "entity_id"},
	entity.KindInvoiceGrid:     {"sales_flat_invoice_grid", "entity_id"},
	entity.KindShipment:        {"sales_flat_shipment", "entity_id"},
	entity.KindShipmentGrid:    {"sales_flat_shipment_grid", "entity_id"},
	entity.KindCreditmemo:      {"sales_flat_creditmemo", "entity_id"},
	entity.KindCreditmemoGrid:  {"sales_flat_creditmemo_grid", "entity_id"},
	entity.KindStockAlert:      {"product_alert_stock", "alert_stock_id"},
	entity.KindPriceAlert:      {"product_alert_price", "alert_price_id"},
	entity.KindWishlist:        {"wishlist", "wishlist_id"},
}

func tableFor(kind string) (tableInfo, error) {
	ti, ok := tables[kind]
	if !ok {
		return tableInfo{}, fmt.Errorf("unknown record kind %q", kind)
	}
	return ti, nil
}
