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
	"github.com/groggu/MagentoAnon/src/batch"
	"github.com/groggu/MagentoAnon/src/entity"
	"github.com/groggu/MagentoAnon/src/store"
)

// Stock/price alerts and wishlists carry no anonymizable fields of their
// own; linking them to a customer at all is the PII. Both phases therefore
// delete rather than rewrite, and both require a resolved customer — no
// customer means nothing to remove, which is reported and not an error.

func (r *Runner) alertsPhase() error {
	r.reporter.Alertf("\nProcess alert data for %s", r.cfg.Email)

	cust, err := r.lookupCustomer()
	if err != nil {
		return err
	}
	if cust == nil {
		return nil
	}

	b := batch.New("alerts")
	count := 0
	for _, kind := range []string{entity.KindStockAlert, entity.KindPriceAlert} {
		alerts, err := r.store.FetchRelated(kind, store.Filter{"customer_id": cust.ID()})
		if err != nil {
			return err
		}
		for _, alert := range alerts {
			b.Delete(alert)
			r.reporter.Dump("remove " + alert.Label())
			count++
		}
	}

	if err := r.commit(b, "alerts"); err != nil {
		return err
	}
	r.reporter.Alertf("Removed %d product stock & price alerts", count)
	r.reporter.Alertf("Product stock & price alerts %s cleared\n", r.cfg.Email)
	return nil
}

func (r *Runner) wishlistPhase() error {
	r.reporter.Alertf("\nProcess wishlist data for %s", r.cfg.Email)

	cust, err := r.lookupCustomer()
	if err != nil {
		return err
	}
	if cust == nil {
		return nil
	}

	b := batch.New("wishlist")
	wishlists, err := r.store.FetchRelated(entity.KindWishlist, store.Filter{"customer_id": cust.ID()})
	if err != nil {
		return err
	}
	for _, wl := range wishlists {
		b.Delete(wl)
		r.reporter.Dump("remove " + wl.Label())
	}

	if err := r.commit(b, "wishlist"); err != nil {
		return err
	}
	if len(wishlists) > 0 {
		r.reporter.Alertf("Removed wishlist for %s", r.cfg.Email)
	} else {
		r.reporter.Alertf("No wishlist for %s", r.cfg.Email)
	}
	r.reporter.Alertf("Wishlist data for %s cleared\n", r.cfg.Email)
	return nil
}
