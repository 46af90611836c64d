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

// customerPhase anonymizes the customer record and every saved address. The
// scope token is the customer id, so every placeholder written here and in
// later phases correlates back to the same record.
func (r *Runner) customerPhase() error {
	r.reporter.Alertf("Process customer data for %s", r.cfg.Email)

	cust, err := r.lookupCustomer()
	if err != nil {
		return err
	}
	if cust == nil {
		return nil
	}
	token := anonymize.Token(cust.ID())

	b := batch.New("customer")
	r.anonymizeInto(b, cust, token)

	addresses, err := r.store.FetchRelated(entity.KindCustomerAddress, store.Filter{"parent_id": cust.ID()})
	if err != nil {
		return err
	}
	for _, addr := range addresses {
		r.anonymizeInto(b, addr, token)
	}
	r.reporter.Alertf("Anonymized %d addresses", len(addresses))

	if err := r.commit(b, "customer"); err != nil {
		return err
	}
	r.reporter.Alertf("Customer data for %s anonymized\n", r.cfg.Email)
	return nil
}
