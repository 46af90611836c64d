package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/groggu/MagentoAnon/src/entity"
	"github.com/groggu/MagentoAnon/src/report"
)

func newBufferedReporter(quiet, debug bool) (*report.Reporter, *bytes.Buffer) {
	var buf bytes.Buffer
	r := report.New(quiet, debug)
	r.Out = &buf
	return r, &buf
}

func TestQuietSuppressesAlerts(t *testing.T) {
	r, buf := newBufferedReporter(true, false)
	r.Alertf("Anonymized %d addresses", 2)
	assert.Empty(t, buf.String())

	r.Forcef("An error occurred saving customer data, see log for details")
	assert.Contains(t, buf.String(), "An error occurred")
}

func TestAlertfPrintsWhenNotQuiet(t *testing.T) {
	r, buf := newBufferedReporter(false, false)
	r.Alertf("Anonymized %d order quotes", 1)
	assert.Equal(t, "Anonymized 1 order quotes\n", buf.String())
}

func TestDumpRequiresDebug(t *testing.T) {
	r, buf := newBufferedReporter(false, false)
	r.Dump("remove wishlist 3")
	assert.Empty(t, buf.String())
}

func TestDumpRendersFieldSet(t *testing.T) {
	r, buf := newBufferedReporter(false, true)

	rec := entity.NewRecord(entity.KindCustomer, 7)
	rec.Set("email", "7@nowhere.anon")
	rec.Set("firstname", "anon")
	r.Dump(rec)

	out := buf.String()
	assert.Contains(t, out, "customer #7")
	assert.Contains(t, out, "email: 7@nowhere.anon")
	assert.Contains(t, out, "firstname: anon")
}

func TestDumpPlainValue(t *testing.T) {
	r, buf := newBufferedReporter(false, true)
	r.Dump("remove stock alert 31")
	assert.Equal(t, "remove stock alert 31\n", buf.String())
}
