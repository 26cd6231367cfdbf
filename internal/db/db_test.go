package db

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunMigrationsIdempotent(t *testing.T) {
	conn, err := Open("sqlite://" + filepath.Join(t.TempDir(), "foodlog.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	if err := RunMigrations(conn); err != nil {
		t.Fatalf("first migration: %v", err)
	}
	if err := RunMigrations(conn); err != nil {
		t.Fatalf("second migration: %v", err)
	}

	for _, table := range []string{"food", "user", "log", "prod", "log_food", "feedback"} {
		var n int
		if err := conn.Get(&n, `SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table); err != nil {
			t.Fatalf("check table %s: %v", table, err)
		}
		if n != 1 {
			t.Errorf("table %s missing", table)
		}
	}
}

func TestOpenPlainPathIsSQLite(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "nested", "plain.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer conn.Close()
	if IsPostgres(conn) {
		t.Fatal("expected sqlite connection for a bare path")
	}
}

func TestParseFoodsPer100g(t *testing.T) {
	foods, err := ParseFoods(strings.NewReader("name,kcal_per_100g\napple,52\n rice , 130\n"))
	if err != nil {
		t.Fatalf("ParseFoods: %v", err)
	}
	if len(foods) != 2 {
		t.Fatalf("expected 2 foods, got %d", len(foods))
	}
	if foods[1].Name != "rice" {
		t.Errorf("name = %q, want %q", foods[1].Name, "rice")
	}
	if math.Abs(foods[0].CalPerGram-0.52) > 1e-9 {
		t.Errorf("apple cal/g = %v, want 0.52", foods[0].CalPerGram)
	}
}

func TestParseFoodsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing calorie column", "name,protein\napple,1\n"},
		{"empty name", "name,cal\n,1\n"},
		{"bad number", "name,cal\napple,lots\n"},
		{"negative number", "name,cal\napple,-1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFoods(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, err := ParseFoods(strings.NewReader("title,cal\napple,1\n"))
	if !errors.Is(err, ErrSeedHeader) {
		t.Errorf("expected ErrSeedHeader, got %v", err)
	}
}

func TestSeedFoodsReplacesTable(t *testing.T) {
	conn, err := Open("sqlite://" + filepath.Join(t.TempDir(), "foodlog.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer conn.Close()
	if err := RunMigrations(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	defaults, err := LoadFoodSeed("")
	if err != nil {
		t.Fatalf("load embedded seed: %v", err)
	}
	if len(defaults) == 0 {
		t.Fatal("embedded seed is empty")
	}
	if _, err := SeedFoods(ctx, conn, defaults); err != nil {
		t.Fatalf("seed defaults: %v", err)
	}

	small, err := ParseFoods(strings.NewReader("name,cal\nsoup,0.4\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n, err := SeedFoods(ctx, conn, small)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if n != 1 {
		t.Errorf("seeded %d rows, want 1", n)
	}

	var count int
	if err := conn.Get(&count, `SELECT COUNT(*) FROM food`); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("food rows = %d, want 1 after replace", count)
	}
}
