package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/cograph/internal/core/model"
	"github.com/agenthands/cograph/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
port = "9090"

[defaults]
tau = 0.25
categories = ["cross"]
min_rs_cross = 0.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 128, cfg.Server.CacheSize, "unset keys keep defaults")
	assert.Equal(t, "data/records.csv", cfg.Data.RecordsPath)

	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, 0.25, p.Tau)
	assert.Equal(t, []model.Category{model.Cross}, p.Categories)
	assert.Equal(t, 0.5, p.MinRS[model.Cross])
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[server\nport ="))
	assert.ErrorContains(t, err, "failed to parse TOML")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("RECORDS_PATH", "/tmp/r.csv")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "/tmp/r.csv", cfg.Data.RecordsPath)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestParams_UnknownCategory(t *testing.T) {
	cfg := Default()
	cfg.Defaults.Categories = []string{"theoretical", "bogus"}

	_, err := cfg.Params()
	assert.True(t, errors.Is(err, errors.ErrInvalidParams))
	assert.Error(t, cfg.Validate())
}

func TestValidateParams(t *testing.T) {
	ok := model.DefaultParams()
	assert.NoError(t, ValidateParams(ok))

	cases := map[string]func(p *model.Params){
		"tau low":     func(p *model.Params) { p.Tau = 0.05 },
		"tau high":    func(p *model.Params) { p.Tau = 0.95 },
		"years":       func(p *model.Params) { p.YearMin, p.YearMax = 2020, 2010 },
		"top n":       func(p *model.Params) { p.TopN = 0 },
		"window":      func(p *model.Params) { p.Window = " " },
		"threshold":   func(p *model.Params) { p.MinRS[model.Cross] = -0.1 },
		"communities": func(p *model.Params) { p.Communities = "louvain" },
	}
	for name, mutate := range cases {
		p := model.DefaultParams()
		mutate(&p)
		err := ValidateParams(p)
		assert.True(t, errors.Is(err, errors.ErrInvalidParams), name)
	}
}

func TestValidateParams_NoCategories(t *testing.T) {
	p := model.DefaultParams()
	p.Categories = nil
	assert.NoError(t, ValidateParams(p), "an empty selection yields an empty graph")
}

func TestValidate_MissingRecordsPath(t *testing.T) {
	cfg := Default()
	cfg.Data.RecordsPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))
}
