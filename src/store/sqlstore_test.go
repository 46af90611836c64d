package store_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groggu/MagentoAnon/src/entity"
	"github.com/groggu/MagentoAnon/src/store"
)

func newMockStore(t *testing.T) (*store.SQLStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store.NewSQLStore(db), mock
}

func TestResolveWebsite(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT website_id, name FROM core_website WHERE code = ?`)).
		WithArgs("main").
		WillReturnRows(sqlmock.NewRows([]string{"website_id", "name"}).AddRow(2, "Main Website"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT store_id FROM core_store WHERE website_id = ? AND is_active = 1 ORDER BY store_id LIMIT 1`)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"store_id"}).AddRow(3))

	scope, err := s.ResolveWebsite("main")
	require.NoError(t, err)
	assert.Equal(t, store.Scope{WebsiteID: 2, WebsiteName: "Main Website", StoreID: 3}, scope)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveWebsiteByNumericID(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT website_id, name FROM core_website WHERE website_id = ?`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"website_id", "name"}).AddRow(2, "Main Website"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT store_id FROM core_store WHERE website_id = ? AND is_active = 1 ORDER BY store_id LIMIT 1`)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"store_id"}).AddRow(3))

	scope, err := s.ResolveWebsite("2")
	require.NoError(t, err)
	assert.Equal(t, store.Scope{WebsiteID: 2, WebsiteName: "Main Website", StoreID: 3}, scope)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveWebsiteUnknownCode(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT website_id, name FROM core_website WHERE code = ?`)).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"website_id", "name"}))

	_, err := s.ResolveWebsite("nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLookupCustomerNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM customer_entity WHERE email = ? AND website_id = ? ORDER BY entity_id`)).
		WithArgs("ghost@example.com", int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"entity_id", "email", "website_id"}))

	_, err := s.LookupCustomer("ghost@example.com", 2)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFetchRelatedBuildsRecords(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"entity_id", "parent_id", "firstname", "city"}).
		AddRow(11, 7, "Jane", "Springfield").
		AddRow(12, 7, "Jane", "Shelbyville")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM customer_address_entity WHERE parent_id = ? ORDER BY entity_id`)).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	recs, err := s.FetchRelated(entity.KindCustomerAddress, store.Filter{"parent_id": int64(7)})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, int64(11), recs[0].ID())
	assert.Equal(t, entity.KindCustomerAddress, recs[0].Kind())
	assert.Equal(t, []string{"entity_id", "parent_id", "firstname", "city"}, recs[0].Fields())
	city, _ := recs[1].Get("city")
	assert.Equal(t, "Shelbyville", city)
}

func TestFetchRelatedUnknownKind(t *testing.T) {
	s, _ := newMockStore(t)
	_, err := s.FetchRelated("archive", nil)
	assert.Error(t, err)
}

func TestCommitBatchWritesOnlyChangedFields(t *testing.T) {
	s, mock := newMockStore(t)

	cust := entity.NewRecord(entity.KindCustomer, 7)
	cust.Set("entity_id", "7")
	cust.Set("email", "jane@example.com")
	cust.Set("password_hash", "abc:123")
	cust.Set("email", "7@nowhere.anon")
	cust.Set("password_hash", "")

	alert := entity.NewRecord(entity.KindStockAlert, 31)
	alert.Set("alert_stock_id", "31")

	untouched := entity.NewRecord(entity.KindOrderGrid, 99)
	untouched.Set("entity_id", "99")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE customer_entity SET email = ?, password_hash = ? WHERE entity_id = ?`)).
		WithArgs("7@nowhere.anon", "", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM product_alert_stock WHERE alert_stock_id = ?`)).
		WithArgs(int64(31)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.CommitBatch([]store.Operation{
		{Kind: store.OpUpdate, Record: cust},
		// no changed fields => no statement issued
		{Kind: store.OpUpdate, Record: untouched},
		{Kind: store.OpDelete, Record: alert},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitBatchRollsBackOnFailure(t *testing.T) {
	s, mock := newMockStore(t)

	rec := entity.NewRecord(entity.KindOrder, 4)
	rec.Set("entity_id", "4")
	rec.Set("customer_email", "jane@example.com")
	rec.Set("customer_email", "4@nowhere.anon")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE sales_flat_order SET customer_email = ? WHERE entity_id = ?`)).
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := s.CommitBatch([]store.Operation{{Kind: store.OpUpdate, Record: rec}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order #4")
	assert.NoError(t, mock.ExpectationsWereMet())
}
