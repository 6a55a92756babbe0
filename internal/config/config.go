// internal/config/config.go
package config

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// 기본값들.
// 설정 파일이 일부 키만 담고 있어도 나머지는 이 값으로 동작한다.
const (
	DefaultReportSize     = 1000
	DefaultReportDir      = "./reports"
	DefaultLogDir         = "./log"
	DefaultReportTemplate = "./reports/report.html"
	DefaultLogLevel       = "info"
)

// 모든 로그에 붙는 서비스 식별자.
const ServiceName = "logreport"

// Config
//
// 분석 실행에 필요한 모든 설정 값을 보관하는 구조체.
// 모든 값은 프로세스 시작 시점에 Load() 에 의해 초기화되며,
// 이후에는 변경되지 않는 불변(read-only) 설정들이다.
//
// 파이프라인(core)은 이 구조체를 "이미 병합 완료된" 상태로만 받는다.
// 설정 파일을 읽거나 병합하는 일은 전적으로 이 패키지의 책임이다.
type Config struct {

	// ---------------------------
	// 입력 / 출력 경로
	// ---------------------------

	LogDir         string // 입력 로그 파일을 탐색할 디렉토리
	ReportDir      string // 리포트 파일이 생성될 디렉토리
	ReportTemplate string // 리포트 템플릿 파일 경로 ($table_json 포함)

	// ---------------------------
	// 처리 파라미터
	// ---------------------------

	ReportSize       int     // 리포트 최대 행 수 (time_sum 내림차순 상위 N)
	MaxErrorsPercent float64 // 허용 파싱 에러율(%) — 초과 시 실행 중단, 필수 값

	// ---------------------------
	// 진단 로그
	// ---------------------------

	LogFile   string // 진단 로그 파일 경로 (비어 있으면 stdout)
	LogLevel  string // zerolog 레벨 문자열 (debug/info/warn/error)
	LogPretty bool   // 개발용 컬러 콘솔 출력 여부
}

// fileConfig 는 JSON 설정 파일의 스키마.
// 모든 필드가 포인터인 이유:
//   - "키가 없는 것"과 "zero 값이 들어있는 것"을 구분해야
//     기본값 병합과 필수 값(MAX_ERRORS_PERCENT) 검증이 가능하다.
type fileConfig struct {
	ReportSize       *int     `json:"REPORT_SIZE"`
	ReportDir        *string  `json:"REPORT_DIR"`
	LogDir           *string  `json:"LOG_DIR"`
	ReportTemplate   *string  `json:"REPORT_TEMPLATE"`
	MaxErrorsPercent *float64 `json:"MAX_ERRORS_PERCENT"`
	LogFile          *string  `json:"LOG_FILE"`
	LogLevel         *string  `json:"LOG_LEVEL"`
	LogPretty        *bool    `json:"LOG_PRETTY"`
}

// Load
//
// 기본값 위에 JSON 설정 파일 값을 덮어써서 최종 Config를 만든다.
//   - 설정 파일이 없으면 에러 (원본 동작과 동일한 fail-fast).
//   - JSON이 깨졌으면 에러.
//   - MAX_ERRORS_PERCENT 누락 또는 [0,100] 밖이면 에러.
//
// 실행 중 설정 오류를 겪지 않도록 모든 검증을 이 시점에 끝낸다.
func Load(path string) (Config, error) {
	cfg := Config{
		ReportSize:     DefaultReportSize,
		ReportDir:      DefaultReportDir,
		LogDir:         DefaultLogDir,
		ReportTemplate: DefaultReportTemplate,
		LogLevel:       DefaultLogLevel,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	// 파일에 존재하는 키만 기본값을 덮어쓴다.
	if fc.ReportSize != nil {
		cfg.ReportSize = *fc.ReportSize
	}
	if fc.ReportDir != nil {
		cfg.ReportDir = *fc.ReportDir
	}
	if fc.LogDir != nil {
		cfg.LogDir = *fc.LogDir
	}
	if fc.ReportTemplate != nil {
		cfg.ReportTemplate = *fc.ReportTemplate
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogPretty != nil {
		cfg.LogPretty = *fc.LogPretty
	}

	// MAX_ERRORS_PERCENT 는 기본값이 없는 필수 설정.
	if fc.MaxErrorsPercent == nil {
		return Config{}, fmt.Errorf("config %s: missing required key MAX_ERRORS_PERCENT", path)
	}
	cfg.MaxErrorsPercent = *fc.MaxErrorsPercent

	if cfg.MaxErrorsPercent < 0 || cfg.MaxErrorsPercent > 100 {
		return Config{}, fmt.Errorf("config %s: MAX_ERRORS_PERCENT=%v out of range [0,100]",
			path, cfg.MaxErrorsPercent)
	}
	if cfg.ReportSize <= 0 {
		return Config{}, fmt.Errorf("config %s: REPORT_SIZE=%d must be positive", path, cfg.ReportSize)
	}

	return cfg, nil
}
