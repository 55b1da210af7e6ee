package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/banco-imobiliario/game/engine"
)

func findGroup(t *testing.T, r *Report, group string) GroupReport {
	t.Helper()
	for _, g := range r.Groups {
		if g.Group == group {
			return g
		}
	}
	t.Fatalf("group %s missing from report", group)
	return GroupReport{}
}

func TestAnalyze_ClassicBoard(t *testing.T) {
	report, err := analyze(engine.DefaultRules())
	require.NoError(t, err)

	assert.Len(t, report.Groups, 8)
	assert.Equal(t, 1500, report.StartingBalance)

	marrom := findGroup(t, report, engine.GroupMarrom)
	assert.Equal(t, 2, marrom.Titles)
	assert.Equal(t, 120, marrom.Cost)
	assert.Equal(t, 60, marrom.MonopolyRent, "bare rent doubles on a complete group")
	assert.Equal(t, 900, marrom.HotelRent)
	assert.Greater(t, marrom.BuildCost, 0)
	assert.Greater(t, marrom.Payback, 0.0)

	assert.Equal(t, 4, report.Stations.Titles)
	assert.Equal(t, 800, report.Stations.Cost)
	assert.Equal(t, 200, report.Stations.FullRent)
	assert.Equal(t, 2, report.Utilities.Titles)
	assert.Equal(t, 70, report.Utilities.FullRent)

	assert.Len(t, report.Affordable, 8)
}

func TestAnalyze_TightBudget(t *testing.T) {
	rules := engine.DefaultRules()
	rules.Name = "apertado"
	rules.StartingBalance = 300

	report, err := analyze(rules)
	require.NoError(t, err)
	assert.Equal(t, []string{engine.GroupMarrom}, report.Affordable)

	var out bytes.Buffer
	printReport(&out, report)
	assert.Contains(t, out.String(), "=== apertado ===")
	assert.Contains(t, out.String(), "Groups affordable from the start: [marrom]")
}

func TestRun(t *testing.T) {
	t.Run("repository rule sets", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(&out, filepath.Join("..", "..", "configs"), nil))
		for _, name := range []string{"classic", "quick", "strict"} {
			assert.Contains(t, out.String(), "=== "+name+" ===")
		}
	})

	t.Run("named rule set", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(&out, filepath.Join("..", "..", "configs"), []string{"quick"}))
		assert.Contains(t, out.String(), "Starting balance: 1000")
		assert.NotContains(t, out.String(), "=== classic ===")
	})

	t.Run("empty directory falls back to built-in rules", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(&out, t.TempDir(), nil))
		assert.Contains(t, out.String(), "=== classic ===")
	})

	t.Run("unknown rule set", func(t *testing.T) {
		var out bytes.Buffer
		assert.Error(t, run(&out, t.TempDir(), []string{"turbo"}))
	})

	t.Run("invalid rule set", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ruim.json"), []byte(`{"name": "ruim", "max_doubles": 0}`), 0644))
		var out bytes.Buffer
		assert.Error(t, run(&out, dir, []string{"ruim"}))
	})

	t.Run("missing directory", func(t *testing.T) {
		var out bytes.Buffer
		assert.Error(t, run(&out, filepath.Join(t.TempDir(), "nope"), nil))
	})
}

func TestCommand(t *testing.T) {
	var out bytes.Buffer
	args := []string{"analyze", "--dir", filepath.Join("..", "..", "configs"), "strict"}
	require.NoError(t, newCommand(&out).Run(context.Background(), args))
	assert.Contains(t, out.String(), "=== strict ===")
	assert.NotContains(t, out.String(), "=== quick ===")

	out.Reset()
	err := newCommand(&out).Run(context.Background(), []string{"analyze", "--dir", t.TempDir(), "turbo"})
	assert.Error(t, err)
}
