package db

import (
	"strings"
	"testing"
)

func TestStatementsAreNamedAndNonEmpty(t *testing.T) {
	for name, sql := range Statements {
		if strings.TrimSpace(sql) == "" {
			t.Errorf("statement %q is empty", name)
		}
	}
	for _, name := range []string{
		"health_check", "teams_all", "matches_played", "matches_insert_batch",
		"match_for_update", "match_update_score", "count_finished_unplayed",
	} {
		if _, ok := Statements[name]; !ok {
			t.Errorf("statement %q not registered", name)
		}
	}
}

func TestPlayedSnapshotOrderedByID(t *testing.T) {
	sql := Statements["matches_played"]
	if !strings.Contains(sql, "WHERE played") || !strings.HasSuffix(strings.TrimSpace(sql), "ORDER BY id") {
		t.Errorf("played snapshot must filter on played and order by id: %s", sql)
	}
}

func TestBulkInsertIsSingleStatement(t *testing.T) {
	sql := Statements["matches_insert_batch"]
	if strings.Count(sql, "INSERT") != 1 || !strings.Contains(sql, "WITH ORDINALITY") {
		t.Errorf("bulk insert should be one ordered INSERT … SELECT: %s", sql)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	for i, q := range migrations("league_changed") {
		upper := strings.ToUpper(q)
		switch {
		case strings.HasPrefix(upper, "CREATE TABLE"), strings.HasPrefix(upper, "CREATE INDEX"),
			strings.HasPrefix(upper, "CREATE EXTENSION"):
			if !strings.Contains(upper, "IF NOT EXISTS") {
				t.Errorf("migration %d is not idempotent: %s", i+1, q)
			}
		case strings.HasPrefix(upper, "CREATE FUNCTION"):
			t.Errorf("migration %d should use CREATE OR REPLACE", i+1)
		}
	}
}

func TestMigrationsQuoteChannel(t *testing.T) {
	steps := migrations("o'brien")
	var triggers int
	for _, q := range steps {
		if strings.Contains(q, "EXECUTE FUNCTION notify_league_changed") {
			triggers++
			if !strings.Contains(q, "'o''brien'") {
				t.Errorf("channel not quoted: %s", q)
			}
		}
	}
	if triggers != 2 {
		t.Errorf("got %d change-feed triggers, want 2", triggers)
	}
}
