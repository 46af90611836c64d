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

import (
	"strconv"

	"github.com/groggu/MagentoAnon/src/entity"
)

// Token is the per-scope correlation id. All fields rewritten within one
// traversal scope derive from the same token, so the placeholder surname,
// email and grid name of a record graph visibly belong together. The token
// is the customer id when a customer record exists, otherwise the id of the
// first record found in the scope (guest quote or order).
type Token int64

func (t Token) String() string {
	return strconv.FormatInt(int64(t), 10)
}

// Transform computes the replacement value for a field. Returns ok=false
// when the field has no registered rule, in which case the caller must leave
// the field untouched. The replacement depends only on the rule and the
// token, never on the field's current value.
func Transform(field string, token Token) (string, bool) {
	rule, ok := LookupRule(field)
	if !ok {
		return "", false
	}
	return apply(rule, token), true
}

func apply(rule Rule, token Token) string {
	switch rule.Action {
	case Const:
		return rule.Payload
	case Remove:
		return ""
	case Name:
		return "anon " + token.String()
	case AnonID:
		return token.String()
	case Street:
		return StreetPlaceholder
	case Email:
		return token.String() + "@nowhere.anon"
	}
	return ""
}

// Anonymize rewrites every field of the record that has a registered rule,
// in place, and returns the number of fields rewritten. Fields without a
// rule are left exactly as-is. No I/O happens here; persisting the change
// is the batch's job.
func Anonymize(rec *entity.Record, token Token) int {
	rewritten := 0
	for _, field := range rec.Fields() {
		value, ok := Transform(field, token)
		if !ok {
			continue
		}
		rec.Set(field, value)
		rewritten++
	}
	return rewritten
}
