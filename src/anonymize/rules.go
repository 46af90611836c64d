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
package anonymize

// RuleAction selects how a field value is replaced. Replacement is a pure
// function of (action, payload, token); the original value is never read,
// which makes every rule idempotent.
type RuleAction int

const (
	// Const replaces the value with the rule's literal payload.
	Const RuleAction = iota
	// Remove blanks the value.
	Remove
	// Name replaces the value with "anon <token>".
	Name
	// AnonID replaces the value with the decimal token.
	AnonID
	// Street replaces the value with a fixed obscured street placeholder.
	Street
	// Email replaces the value with "<token>@nowhere.anon". The token keeps
	// the address unique where the schema enforces email uniqueness.
	Email
)

// Rule pairs an action with an optional literal payload (Const only).
type Rule struct {
	Action  RuleAction
	Payload string
}

// StreetPlaceholder is the fixed replacement for street fields.
const StreetPlaceholder = "**** *******  ********"

// registry maps field names to their replacement rule. Fields absent from
// this map are never touched. The map is package-private and never mutated
// after init.
//
// Field reference: https://devdocs.magento.com/compliance/privacy/pi-data-reference-m1.html
var registry = map[string]Rule{
	// order, quote
	"customer_first_name":  {Const, "anon"},
	"customer_middle_name": {Remove, ""},
	"customer_last_name":   {Name, ""},
	"customer_firstname":   {Const, "anon"},
	"customer_middlename":  {Remove, ""},
	"customer_lastname":    {AnonID, ""},
	"customer_email":       {Email, ""},
	"remote_ip":            {Remove, ""},
	"customer_dob":         {Remove, ""},
	"customer_gender":      {Remove, ""},

	// order address, quote address
	"firstname":  {Const, "anon"},
	"middlename": {Remove, ""},
	"lastname":   {AnonID, ""},
	"company":    {Remove, ""},
	"vat_id":     {Remove, ""},
	"street":     {Street, ""},
	"city":       {Const, "Anytown"},
	"email":      {Email, ""},
	"telephone":  {Const, "********"},

	// order grid, invoice grid, shipment grid, credit memo grid
	"shipping_name": {Name, ""},
	"billing_name":  {Name, ""},

	// order payment, invoice payment
	"cc_owner":          {Name, ""},
	"cc_last4":          {Const, "****"},
	"cc_number_enc":     {Remove, ""},
	"cc_exp_month":      {Const, "**"},
	"cc_exp_year":       {Const, "**"},
	"cybersource_token": {Remove, ""},

	// customer
	"password_hash": {Remove, ""},
}

// LookupRule returns the rule registered for a field name, if any.
func LookupRule(field string) (Rule, bool) {
	rule, ok := registry[field]
	return rule, ok
}

// RuleCount reports the number of registered field rules.
func RuleCount() int {
	return len(registry)
}
