package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"storecheck/matching"
)

// DBConfig holds connection pool settings for the store database.
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultDBConfig returns pool settings suitable for the single-writer
// SQLite workload.
func DefaultDBConfig() DBConfig {
	return DBConfig{
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
	}
}

// StoreDB wraps the SQLite database holding the master store list and the
// monthly sell-through figures used to enrich exports.
type StoreDB struct {
	conn *sql.DB
}

// NewStoreDB opens (creating if needed) the store database at path and
// runs migrations. Use ":memory:" for tests.
func NewStoreDB(path string, cfg DBConfig) (*StoreDB, error) {
	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open store database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping store database: %w", err)
	}

	db := &StoreDB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the underlying connection pool.
func (db *StoreDB) Close() error {
	return db.conn.Close()
}

func (db *StoreDB) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS master_stores (
			cust_id TEXT PRIMARY KEY,
			store_name TEXT NOT NULL,
			region TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			latitude TEXT NOT NULL DEFAULT '',
			longitude TEXT NOT NULL DEFAULT '',
			nik TEXT NOT NULL DEFAULT '',
			npwp TEXT NOT NULL DEFAULT '',
			reference_id_skt TEXT NOT NULL DEFAULT '',
			reference_id_g2g TEXT NOT NULL DEFAULT '',
			reference_id_tph TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_master_stores_region ON master_stores(region)`,
		`CREATE TABLE IF NOT EXISTS sell_through (
			cust_id TEXT NOT NULL,
			month TEXT NOT NULL,
			value REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (cust_id, month)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

const masterStoreColumns = `cust_id, store_name, region, city, address,
	latitude, longitude, nik, npwp,
	reference_id_skt, reference_id_g2g, reference_id_tph`

// UpsertStores inserts or replaces master store rows in one transaction.
func (db *StoreDB) UpsertStores(ctx context.Context, stores []matching.MasterStore) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO master_stores (`+masterStoreColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, s := range stores {
		if _, err := stmt.ExecContext(ctx,
			s.CustID, s.StoreName, s.Region, s.City, s.Address,
			s.Latitude, s.Longitude, s.NIK, s.NPWP,
			s.RefIDSKT, s.RefIDG2G, s.RefIDTPH,
		); err != nil {
			return fmt.Errorf("failed to upsert store %s: %w", s.CustID, err)
		}
	}

	return tx.Commit()
}

// AllStores returns every master store row.
func (db *StoreDB) AllStores(ctx context.Context) ([]matching.MasterStore, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+masterStoreColumns+` FROM master_stores`)
	if err != nil {
		return nil, fmt.Errorf("failed to query master stores: %w", err)
	}
	defer rows.Close()

	return scanStores(rows)
}

// StoresByRegion returns the master stores whose region equals the given
// one after both sides pass the region normalization rule. The comparison
// runs in Go because the rule is not expressible in SQL; the master list
// is small enough that a full scan is fine.
func (db *StoreDB) StoresByRegion(ctx context.Context, region string) ([]matching.MasterStore, error) {
	want := matching.Normalize(region, matching.FieldRegion)
	if want == "" {
		return nil, fmt.Errorf("region must not be blank")
	}

	all, err := db.AllStores(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []matching.MasterStore
	for _, s := range all {
		if matching.Normalize(s.Region, matching.FieldRegion) == want {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

// CountStores returns the number of master store rows.
func (db *StoreDB) CountStores(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM master_stores`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count master stores: %w", err)
	}
	return n, nil
}

func scanStores(rows *sql.Rows) ([]matching.MasterStore, error) {
	var stores []matching.MasterStore
	for rows.Next() {
		var s matching.MasterStore
		if err := rows.Scan(
			&s.CustID, &s.StoreName, &s.Region, &s.City, &s.Address,
			&s.Latitude, &s.Longitude, &s.NIK, &s.NPWP,
			&s.RefIDSKT, &s.RefIDG2G, &s.RefIDTPH,
		); err != nil {
			return nil, fmt.Errorf("failed to scan store row: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}
