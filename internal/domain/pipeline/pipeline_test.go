package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDefaults(t *testing.T) {
	got := Settings{LogLevel: "  DEBUG "}.WithDefaults()
	assert.Equal(t, Settings{
		BatchMaxRows:    DefaultBatchMaxRows,
		BatchMaxAgeSecs: DefaultBatchMaxAgeSecs,
		LogLevel:        "debug",
	}, got)

	kept := Settings{BatchMaxRows: 10, BatchMaxAgeSecs: 5, LogLevel: "warn"}.WithDefaults()
	assert.Equal(t, 10, kept.BatchMaxRows)
	assert.Equal(t, 5, kept.BatchMaxAgeSecs)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      Settings
		wantErr string
	}{
		{name: "defaults", in: Settings{}.WithDefaults()},
		{name: "rows too small", in: Settings{BatchMaxRows: -1, BatchMaxAgeSecs: 1, LogLevel: "info"}, wantErr: "--batch-max-rows"},
		{name: "age too large", in: Settings{BatchMaxRows: 1, BatchMaxAgeSecs: 7200, LogLevel: "info"}, wantErr: "--batch-max-age"},
		{name: "unknown level", in: Settings{BatchMaxRows: 1, BatchMaxAgeSecs: 1, LogLevel: "loud"}, wantErr: "--log-level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestEnvIsSortedAndMergesExtra(t *testing.T) {
	env := Settings{}.WithDefaults().Env(map[string]string{
		Key("STORAGE"):   "r2",
		Key("LOG_LEVEL"): "trace",
	})

	names := make([]string, 0, len(env))
	values := map[string]string{}
	for _, v := range env {
		names = append(names, v.Name)
		values[v.Name] = v.Value
	}
	assert.Equal(t, []string{
		"OTLP2PARQUET_BATCH_MAX_AGE_SECS",
		"OTLP2PARQUET_BATCH_MAX_ROWS",
		"OTLP2PARQUET_LOG_LEVEL",
		"OTLP2PARQUET_STORAGE",
	}, names)
	assert.Equal(t, "trace", values["OTLP2PARQUET_LOG_LEVEL"])
	assert.Equal(t, "200000", values["OTLP2PARQUET_BATCH_MAX_ROWS"])
}
