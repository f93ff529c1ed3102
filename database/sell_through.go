package database

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// monthLayout is the key format for sell-through months.
const monthLayout = "2006-01"

// UpsertSellThrough records the monthly sell-through value for one store.
func (db *StoreDB) UpsertSellThrough(ctx context.Context, custID, month string, value float64) error {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return fmt.Errorf("invalid sell-through month %q: %w", month, err)
	}
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO sell_through (cust_id, month, value) VALUES (?, ?, ?)`,
		custID, month, value,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert sell-through for %s/%s: %w", custID, month, err)
	}
	return nil
}

// MonthlySellThrough returns per-store month totals for the given customer
// IDs, restricted to months >= since ("YYYY-MM"). The second return value
// lists the months present, ascending, so callers can lay out stable
// export columns.
func (db *StoreDB) MonthlySellThrough(ctx context.Context, custIDs []string, since string) (map[string]map[string]float64, []string, error) {
	if len(custIDs) == 0 {
		return map[string]map[string]float64{}, nil, nil
	}

	placeholders := strings.Repeat("?,", len(custIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]interface{}, 0, len(custIDs)+1)
	for _, id := range custIDs {
		args = append(args, id)
	}
	args = append(args, since)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT cust_id, month, value FROM sell_through
		 WHERE cust_id IN (`+placeholders+`) AND month >= ?`,
		args...,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query sell-through: %w", err)
	}
	defer rows.Close()

	byStore := make(map[string]map[string]float64)
	monthSet := make(map[string]bool)
	for rows.Next() {
		var custID, month string
		var value float64
		if err := rows.Scan(&custID, &month, &value); err != nil {
			return nil, nil, fmt.Errorf("failed to scan sell-through row: %w", err)
		}
		if byStore[custID] == nil {
			byStore[custID] = make(map[string]float64)
		}
		byStore[custID][month] = value
		monthSet[month] = true
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	return byStore, months, nil
}

// SellThroughCutoff returns the "YYYY-MM" key six full months before now,
// the default window for export enrichment.
func SellThroughCutoff(now time.Time) string {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfMonth.AddDate(0, -6, 0).Format(monthLayout)
}
