package supabase

import (
	"context"
	"encoding/json"
	"fmt"
)

// SelectOne loads the first row where column equals value into dst.
// It reports false, nil when no row matches.
func (c *Client) SelectOne(ctx context.Context, table, column, value, bearer string, dst any) (bool, error) {
	if err := live(ctx); err != nil {
		return false, err
	}
	var rows []json.RawMessage
	_, err := c.rest(bearer).
		From(table).
		Select("*", "", false).
		Eq(column, value).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return false, fmt.Errorf("supabase: select %s: %w", table, err)
	}
	if len(rows) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(rows[0], dst); err != nil {
		return false, fmt.Errorf("decode %s row: %w", table, err)
	}
	return true, nil
}

// Insert adds one row.
func (c *Client) Insert(ctx context.Context, table string, row any, bearer string) error {
	if err := live(ctx); err != nil {
		return err
	}
	if _, _, err := c.rest(bearer).From(table).Insert(row, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("supabase: insert %s: %w", table, err)
	}
	return nil
}

// Upsert inserts row or merges it into the row that conflicts on onConflict.
func (c *Client) Upsert(ctx context.Context, table, onConflict string, row any, bearer string) error {
	if err := live(ctx); err != nil {
		return err
	}
	if _, _, err := c.rest(bearer).From(table).Upsert(row, onConflict, "minimal", "").Execute(); err != nil {
		return fmt.Errorf("supabase: upsert %s: %w", table, err)
	}
	return nil
}
