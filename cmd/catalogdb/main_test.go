package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"Storefront/internal/catalog"
)

func TestRun_Lifecycle(t *testing.T) {
	t.Setenv("SHOP_LOG_LEVEL", "error")
	dsn := filepath.Join(t.TempDir(), "products.db")
	base := []string{"-driver", "sqlite3", "-dsn", dsn}
	ctx := context.Background()

	exec := func(args ...string) (string, error) {
		var out bytes.Buffer
		err := run(ctx, append(append([]string{}, base...), args...), &out)
		return out.String(), err
	}

	if _, err := exec("migrate"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	out, err := exec("seed")
	if err != nil || !strings.Contains(out, "inserted 6") {
		t.Fatalf("seed: out=%q err=%v", out, err)
	}
	out, err = exec("seed")
	if err != nil || !strings.Contains(out, "inserted 0") {
		t.Fatalf("reseed: out=%q err=%v", out, err)
	}

	out, err = exec("add", "-id", "40", "-name", "Switch OLED", "-category", "Consoles", "-price", "$349.99", "-description", "Handheld console", "-image", "switch.png")
	if err != nil || !strings.Contains(out, "added product 40") {
		t.Fatalf("add: out=%q err=%v", out, err)
	}
	if _, err := exec("add", "-id", "40", "-name", "Dup", "-category", "Consoles", "-price", "1", "-description", "dup", "-image", "dup.png"); !errors.Is(err, catalog.ErrDuplicateID) {
		t.Fatalf("duplicate add: %v", err)
	}

	if _, err := exec("add", "-name", "Bare", "-category", "Consoles", "-price", "1", "-image", "bare.png"); err == nil {
		t.Fatalf("add without -description must fail")
	}

	out, err = exec("list")
	if err != nil || !strings.Contains(out, "Switch OLED") || !strings.Contains(out, "$349.99") {
		t.Fatalf("list: out=%q err=%v", out, err)
	}

	if _, err := exec("remove", "-id", "40"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := exec("remove", "-id", "40"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("second remove: %v", err)
	}
}

func TestRun_Rejects(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer

	if err := run(ctx, []string{"-driver", "memory"}, &out); err == nil {
		t.Fatalf("expected error without command")
	}
	if err := run(ctx, []string{"-driver", "memory", "list"}, &out); err == nil {
		t.Fatalf("expected error for memory driver")
	}
	dsn := filepath.Join(t.TempDir(), "x.db")
	if err := run(ctx, []string{"-driver", "sqlite3", "-dsn", dsn, "explode"}, &out); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}
