package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/parcours/internal/catalog"
	"github.com/verte-zerg/parcours/internal/model"
	"github.com/verte-zerg/parcours/internal/navigation"
)

func TestParseHovers(t *testing.T) {
	hovers, err := parseHovers([]string{"decouvrir=3500", " apprendre = 200 "})
	if err != nil {
		t.Fatalf("parse hovers: %v", err)
	}
	if len(hovers) != 2 || hovers[0].id != "decouvrir" || hovers[0].d != 3500*time.Millisecond {
		t.Fatalf("unexpected hovers %+v", hovers)
	}
	if hovers[1].id != "apprendre" || hovers[1].d != 200*time.Millisecond {
		t.Fatalf("unexpected second hover %+v", hovers[1])
	}

	for _, bad := range []string{"decouvrir", "=100", "decouvrir=abc", "decouvrir=-5"} {
		if _, err := parseHovers([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestSimulateSessionLongHover(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	rec := simulateSession(cat, []hover{{id: "decouvrir", d: 3500 * time.Millisecond}}, nil, 0)
	if rec.HesitationLevel != 3 || rec.MentalState != model.StateHesitant {
		t.Fatalf("expected hesitant level 3, got %d %s", rec.HesitationLevel, rec.MentalState)
	}
	res := navigation.Rank(cat.Items(), rec)
	if res.OrderedItems[0].ID != "decouvrir" {
		t.Fatalf("expected decouvrir first, got %s", res.OrderedItems[0].ID)
	}
}

func TestSimulateSessionClicks(t *testing.T) {
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	rec := simulateSession(cat, nil, []string{"decouvrir"}, 20*time.Second)
	if rec.TimeSpentSeconds != 20 || rec.MentalState != model.StateConfident {
		t.Fatalf("expected confident at 20s, got %d %s", rec.TimeSpentSeconds, rec.MentalState)
	}
	if rec.Preferences["decouvrir"] != 1 || rec.Interactions[0].Metadata["type"] != model.TypeDiscover {
		t.Fatalf("unexpected click record %+v", rec)
	}
	res := navigation.Rank(cat.Items(), rec)
	if res.OrderedItems[0].ID != "exercer" {
		t.Fatalf("expected exercer first for a confident session, got %s", res.OrderedItems[0].ID)
	}
}

func TestEnvAddr(t *testing.T) {
	t.Setenv("PORT", "")
	if envAddr() != nil {
		t.Fatalf("expected empty PORT to be ignored")
	}
	t.Setenv("PORT", " 8080 ")
	addr := envAddr()
	if addr == nil || *addr != ":8080" {
		t.Fatalf("unexpected addr %v", addr)
	}
}

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("run %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestQuestionsListWithoutModeShowsEveryBank(t *testing.T) {
	db := filepath.Join(t.TempDir(), "parcours.db")
	out := runRoot(t, "questions", "--db", db, "list")
	for _, mode := range []string{"general", "decouvrir", "apprendre", "exercer"} {
		if !strings.Contains(out, mode) {
			t.Fatalf("expected mode %q in listing:\n%s", mode, out)
		}
	}
}

func TestQuestionsAddDefaultsToGeneral(t *testing.T) {
	db := filepath.Join(t.TempDir(), "parcours.db")
	runRoot(t, "questions", "--db", db, "add", "Une", "question", "de", "plus")
	out := runRoot(t, "questions", "--db", db, "list", "--mode", "General")
	if !strings.Contains(out, "Une question de plus") {
		t.Fatalf("expected added question in general bank:\n%s", out)
	}
	if strings.Contains(out, "decouvrir") {
		t.Fatalf("expected only the general bank:\n%s", out)
	}
}
