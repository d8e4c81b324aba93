package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/launchdash/internal/cli/config"
	"github.com/leapstack-labs/launchdash/internal/cli/testutil"
	dash "github.com/leapstack-labs/launchdash/internal/dashboard"
	"github.com/leapstack-labs/launchdash/internal/launch"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.GetConfig(context.Background())
	cfg.Data.Path = testutil.SampleDataPath(t)
	return cfg
}

func runSummaryCmd(t *testing.T, cfg *config.Config, args ...string) testutil.Result {
	t.Helper()
	cmd := NewSummaryCommand()
	cmd.SetContext(config.WithConfig(context.Background(), cfg))
	return testutil.Execute(t, cmd, args...)
}

func TestCommandsExist(t *testing.T) {
	tests := []struct {
		name  string
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{"serve", NewServeCommand(), "serve", []string{"host", "port", "debug", "open", "inclusive"}},
		{"summary", NewSummaryCommand(), "summary", []string{"site", "low", "high", "output"}},
		{"version", NewVersionCommand("test", "", ""), "version", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short)
			for _, f := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(f), "missing flag --%s", f)
			}
		})
	}
}

func TestServeCommand_DebugDefaultsOn(t *testing.T) {
	f := NewServeCommand().Flags().Lookup("debug")
	require.NotNil(t, f)
	assert.Equal(t, "true", f.DefValue)
}

func TestServeCommand_RejectsArgs(t *testing.T) {
	res := testutil.Execute(t, NewServeCommand(), "extra")
	require.Error(t, res.Err)
}

func TestServeCommand_MissingDataFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.Path = t.TempDir() + "/missing.csv"

	cmd := NewServeCommand()
	cmd.SetContext(config.WithConfig(context.Background(), cfg))
	res := testutil.Execute(t, cmd)

	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "missing.csv")
	assert.NotContains(t, res.Out, "Dashboard running on")
}

func TestSummary_Table(t *testing.T) {
	res := runSummaryCmd(t, testConfig(t))
	require.NoError(t, res.Err)

	testutil.AssertNoANSI(t, res.Out)
	testutil.AssertLinesContain(t, res.Out,
		"Total Success Launches by Site",
		"KSC LC-39A",
		"40.0%",
		"Payload range (Kg): (0, 9600)",
		"Bounds: Exclusive",
		"15 of 18 launches in range, 4 successful",
	)
}

func TestSummary_TableStyleFollowsTerminal(t *testing.T) {
	res := runSummaryCmd(t, testConfig(t))
	require.NoError(t, res.Err)

	assert.Contains(t, res.Out, "+-------")
	assert.NotContains(t, res.Out, "┌")

	f, err := os.CreateTemp(t.TempDir(), "summary")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, table.StyleDefault.Name, tableStyle(f).Name, "regular files are not terminals")
	assert.Equal(t, table.StyleDefault.Name, tableStyle(&bytes.Buffer{}).Name)
}

func TestSummary_SingleSiteAndRange(t *testing.T) {
	res := runSummaryCmd(t, testConfig(t), "--site", "KSC LC-39A", "--low", "2000", "--high", "6000")
	require.NoError(t, res.Err)

	testutil.AssertLinesContain(t, res.Out,
		"Success vs. Failed Launches for KSC LC-39A",
		"Success",
		"Fail",
		"Payload range (Kg): (2000, 6000)",
	)
}

func TestSummary_JSON(t *testing.T) {
	res := runSummaryCmd(t, testConfig(t), "-o", "json")
	require.NoError(t, res.Err)

	var s Summary
	require.NoError(t, json.Unmarshal([]byte(res.Out), &s))
	assert.Equal(t, dash.AllSites, s.Site)
	assert.Equal(t, 5, s.Total)
	assert.Len(t, s.Slices, 4)
	assert.Equal(t, "(0, 9600)", s.Range)
	assert.False(t, s.Inclusive)
	assert.Equal(t, 15, s.InRange)
	assert.Equal(t, 4, s.Successes)
	assert.Equal(t, 18, s.Records)
}

func TestSummary_YAMLInclusive(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dashboard.InclusiveBounds = true

	res := runSummaryCmd(t, cfg, "--output", "yaml")
	require.NoError(t, res.Err)

	var s map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(res.Out), &s))
	assert.Equal(t, true, s["inclusive_bounds"])
	assert.Equal(t, 18, s["in_range"])
	assert.Equal(t, 5, s["successes"])
}

func TestSummary_OnlyLowChanged(t *testing.T) {
	res := runSummaryCmd(t, testConfig(t), "--low", "5000", "-o", "json")
	require.NoError(t, res.Err)

	var s Summary
	require.NoError(t, json.Unmarshal([]byte(res.Out), &s))
	assert.Equal(t, "(5000, 9600)", s.Range)
	// 5300, 5600 and 6460
	assert.Equal(t, 3, s.InRange)
}

func TestSummary_UnknownFormat(t *testing.T) {
	res := runSummaryCmd(t, testConfig(t), "-o", "xml")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), `unknown output format "xml"`)
}

func TestSummary_LoadError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Data.Path = t.TempDir() + "/missing.csv"

	res := runSummaryCmd(t, cfg)
	require.Error(t, res.Err)
	assert.True(t, strings.HasPrefix(res.Err.Error(), "failed to load launch data"))
}

func TestBuildSummary(t *testing.T) {
	d := dash.NewData(mustDataset(t,
		launch.Record{LaunchSite: "SiteA", Class: launch.Success, PayloadMassKg: 500},
		launch.Record{LaunchSite: "SiteA", Class: launch.Failure, PayloadMassKg: 800},
		launch.Record{LaunchSite: "SiteB", Class: launch.Failure, PayloadMassKg: 1200},
	))

	t.Run("all sites", func(t *testing.T) {
		s := BuildSummary(d, dash.AllSites, dash.PayloadRange{Low: 0, High: 1000})
		assert.Equal(t, 1, s.Total)
		assert.Equal(t, "(0, 1000)", s.Range)
		assert.Equal(t, 2, s.InRange)
		assert.Equal(t, 1, s.Successes)
		assert.Equal(t, 3, s.Records)
	})

	t.Run("site without successes", func(t *testing.T) {
		s := BuildSummary(d, "SiteB", d.FullRange())
		require.Len(t, s.Slices, 1)
		assert.Equal(t, dash.LabelFail, s.Slices[0].Label)
		assert.Equal(t, 1, s.Total)
	})

	t.Run("unknown site has empty slices", func(t *testing.T) {
		s := BuildSummary(d, "Nowhere", d.FullRange())
		assert.NotNil(t, s.Slices)
		assert.Empty(t, s.Slices)
		assert.Equal(t, 0, s.Total)
	})
}

func TestDataOptions(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dashboard.InclusiveBounds = true
	cfg.Dashboard.Palette = []string{"#111111", "#222222"}

	d := dash.NewData(mustDataset(t, launch.Record{LaunchSite: "SiteA", Class: launch.Success, PayloadMassKg: 1}), dataOptions(cfg)...)
	assert.True(t, d.InclusiveBounds)
	assert.Equal(t, dash.Palette{"#111111", "#222222"}, d.Palette)
}

func mustDataset(t *testing.T, records ...launch.Record) *launch.Dataset {
	t.Helper()
	ds, err := launch.NewDataset(launch.NewTableFromRecords(records...))
	require.NoError(t, err)
	return ds
}
