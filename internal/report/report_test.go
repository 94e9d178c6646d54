package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/huntsim/internal/game/combat"
	"github.com/cory-johannsen/huntsim/internal/report"
	"github.com/cory-johannsen/huntsim/internal/sim"
)

func rows() []sim.SweepRow {
	res := func(hits, loss float64) sim.Result {
		return sim.Result{Simulations: 10000, AvgHits: hits, AvgHitPointLoss: loss, AvgDamage: hits * 5}
	}
	return []sim.SweepRow{
		{Weapon: "lance", Name: "Lance", Variant: combat.VariantLance, Level: 1, Result: res(1.5, 2.25)},
		{Weapon: "lance", Name: "Lance", Variant: combat.VariantLance, Level: 2, Result: res(1.75, 3)},
		{Weapon: "bow", Name: "Bow", Variant: combat.VariantSimple, Level: 2, Result: res(0.5, 1)},
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteTable(&buf, rows()))
	out := buf.String()
	assert.Contains(t, out, "10,000 simulations")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Empty(t, lines[1])
	assert.Equal(t, []string{"WEAPON", "LV1", "LV2"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"Lance", "1.50", "/", "2.25", "1.75", "/", "3.00"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"Bow", "-", "0.50", "/", "1.00"}, strings.Fields(lines[4]))
}

func TestWriteTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteTable(&buf, nil))
	assert.Equal(t, "no results\n", buf.String())
}

func TestWriteYAML_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteYAML(&buf, rows()))
	assert.Contains(t, buf.String(), "avg_hit_point_loss: 2.25")

	var got []sim.SweepRow
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, rows(), got)
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, report.Write(&bytes.Buffer{}, "csv", rows()))
}

func TestWrite_Dispatches(t *testing.T) {
	var table, yml bytes.Buffer
	require.NoError(t, report.Write(&table, report.FormatTable, rows()))
	require.NoError(t, report.Write(&yml, report.FormatYAML, rows()))
	assert.Contains(t, table.String(), "WEAPON")
	assert.Contains(t, yml.String(), "weapon: lance")
}
