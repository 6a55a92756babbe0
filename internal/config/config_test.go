package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	t.Parallel()

	// 필수 키만 있는 최소 설정 — 나머지는 전부 기본값
	cfg, err := Load(writeConfig(t, `{"MAX_ERRORS_PERCENT": 10}`))
	require.NoError(t, err)

	require.Equal(t, DefaultReportSize, cfg.ReportSize)
	require.Equal(t, DefaultReportDir, cfg.ReportDir)
	require.Equal(t, DefaultLogDir, cfg.LogDir)
	require.Equal(t, DefaultReportTemplate, cfg.ReportTemplate)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
	require.Equal(t, 10.0, cfg.MaxErrorsPercent)
	require.Empty(t, cfg.LogFile)
}

func TestLoad_FileValuesWin(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `{
		"REPORT_SIZE": 50,
		"REPORT_DIR": "/srv/reports",
		"LOG_DIR": "/var/log/nginx",
		"MAX_ERRORS_PERCENT": 5.5,
		"LOG_FILE": "/var/log/analyzer.log",
		"LOG_LEVEL": "debug"
	}`))
	require.NoError(t, err)

	require.Equal(t, 50, cfg.ReportSize)
	require.Equal(t, "/srv/reports", cfg.ReportDir)
	require.Equal(t, "/var/log/nginx", cfg.LogDir)
	require.Equal(t, 5.5, cfg.MaxErrorsPercent)
	require.Equal(t, "/var/log/analyzer.log", cfg.LogFile)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingMaxErrorsPercent(t *testing.T) {
	t.Parallel()

	// MAX_ERRORS_PERCENT 는 기본값 없는 필수 키
	_, err := Load(writeConfig(t, `{"REPORT_SIZE": 100}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "MAX_ERRORS_PERCENT")
}

func TestLoad_MaxErrorsPercentOutOfRange(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, `{"MAX_ERRORS_PERCENT": 150}`))
	require.Error(t, err)

	_, err = Load(writeConfig(t, `{"MAX_ERRORS_PERCENT": -1}`))
	require.Error(t, err)
}

func TestLoad_ZeroMaxErrorsPercentIsValid(t *testing.T) {
	t.Parallel()

	// 0은 "에러 한 줄도 허용 안 함"이라는 유효한 설정이다
	cfg, err := Load(writeConfig(t, `{"MAX_ERRORS_PERCENT": 0}`))
	require.NoError(t, err)
	require.Equal(t, 0.0, cfg.MaxErrorsPercent)
}

func TestLoad_NonPositiveReportSize(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, `{"MAX_ERRORS_PERCENT": 10, "REPORT_SIZE": 0}`))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoad_BrokenJSON(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, `{"MAX_ERRORS_PERCENT": `))
	require.Error(t, err)
}
