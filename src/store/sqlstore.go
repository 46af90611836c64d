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
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/groggu/MagentoAnon/src/entity"
)

// SQLStore implements Store over a database/sql connection to a Magento 1
// schema. The production driver is mysql; tests run the same store against
// sqlite3.
type SQLStore struct {
	db *sql.DB
}

func OpenSQLStore(driver, dsn string) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect to %s store: %w", driver, err)
	}
	return &SQLStore{db: db}, nil
}

// NewSQLStore wraps an already-open connection. Used by tests.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) ResolveWebsite(code string) (Scope, error) {
	var scope Scope
	// The website argument may be a code or a numeric website id.
	query := `SELECT website_id, name FROM core_website WHERE code = ?`
	arg := any(code)
	if id, err := strconv.ParseInt(code, 10, 64); err == nil {
		query = `SELECT website_id, name FROM core_website WHERE website_id = ?`
		arg = id
	}
	row := s.db.QueryRow(query, arg)
	if err := row.Scan(&scope.WebsiteID, &scope.WebsiteName); err != nil {
		if err == sql.ErrNoRows {
			return Scope{}, ErrNotFound
		}
		return Scope{}, fmt.Errorf("resolve website %q: %w", code, err)
	}

	// Default store of the website: the lowest-numbered active store view.
	row = s.db.QueryRow(
		`SELECT store_id FROM core_store WHERE website_id = ? AND is_active = 1 ORDER BY store_id LIMIT 1`,
		scope.WebsiteID)
	if err := row.Scan(&scope.StoreID); err != nil {
		if err == sql.ErrNoRows {
			return Scope{}, fmt.Errorf("website %q has no active store view", code)
		}
		return Scope{}, fmt.Errorf("resolve default store for website %q: %w", code, err)
	}
	return scope, nil
}

func (s *SQLStore) LookupCustomer(email string, websiteID int64) (*entity.Record, error) {
	recs, err := s.FetchRelated(entity.KindCustomer, Filter{"email": email, "website_id": websiteID})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return recs[0], nil
}

func (s *SQLStore) FetchRelated(kind string, filter Filter) ([]*entity.Record, error) {
	ti, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	where, args := buildWhere(filter)
	query := fmt.Sprintf(`SELECT * FROM %s%s ORDER BY %s`, ti.table, where, ti.idCol)
	log.Debugf("fetch %s: %s %v", kind, query, args)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", kind, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("fetch %s columns: %w", kind, err)
	}

	var recs []*entity.Record
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", kind, err)
		}

		rec, err := buildRecord(kind, ti.idCol, cols, values)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", kind, err)
	}
	return recs, nil
}

// CommitBatch applies all operations inside a single SQL transaction.
// Updates write only the fields the anonymizer actually changed; an update
// with no changed fields is a no-op.
func (s *SQLStore) CommitBatch(ops []Operation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin batch transaction: %w", err)
	}

	for _, op := range ops {
		ti, err := tableFor(op.Record.Kind())
		if err != nil {
			tx.Rollback()
			return err
		}
		switch op.Kind {
		case OpUpdate:
			changed := op.Record.Changed()
			if len(changed) == 0 {
				continue
			}
			sets := make([]string, len(changed))
			args := make([]any, 0, len(changed)+1)
			for i, f := range changed {
				sets[i] = f + " = ?"
				v, _ := op.Record.Get(f)
				args = append(args, v)
			}
			args = append(args, op.Record.ID())
			query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = ?`,
				ti.table, strings.Join(sets, ", "), ti.idCol)
			if _, err := tx.Exec(query, args...); err != nil {
				tx.Rollback()
				return fmt.Errorf("update %s: %w", op.Record.Label(), err)
			}
		case OpDelete:
			query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, ti.table, ti.idCol)
			if _, err := tx.Exec(query, op.Record.ID()); err != nil {
				tx.Rollback()
				return fmt.Errorf("delete %s: %w", op.Record.Label(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch transaction: %w", err)
	}
	return nil
}

func buildWhere(filter Filter) (string, []any) {
	if len(filter) == 0 {
		return "", nil
	}
	fields := lo.Keys(filter)
	sort.Strings(fields)

	conds := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		conds[i] = f + " = ?"
		args[i] = filter[f]
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func buildRecord(kind, idCol string, cols []string, values []sql.NullString) (*entity.Record, error) {
	id := int64(0)
	for i, col := range cols {
		if col == idCol && values[i].Valid {
			parsed, err := strconv.ParseInt(values[i].String, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse %s.%s %q: %w", kind, idCol, values[i].String, err)
			}
			id = parsed
		}
	}

	rec := entity.NewRecord(kind, id)
	for i, col := range cols {
		rec.Set(col, values[i].String)
	}
	return rec, nil
}
