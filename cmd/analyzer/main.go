package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"logreport/internal/analyzer"
	"logreport/internal/config"
	"logreport/internal/extractor"
	"logreport/internal/locator"
	"logreport/internal/logger"
	"logreport/internal/metrics"
	"logreport/internal/report"

	zlog "github.com/rs/zerolog/log"
)

const defaultConfigPath = "./config.json"

func main() {

	// ====================================================================
	// CLI 인자 처리
	// ====================================================================
	//
	// 받는 인자는 설정 파일 경로 하나뿐이다.
	// 나머지 동작 파라미터(LOG_DIR, REPORT_DIR, MAX_ERRORS_PERCENT 등)는
	// 전부 설정 파일에서 온다. cron 항목이 단순해지도록 의도한 구조.
	// ====================================================================
	configPath := flag.String("config", defaultConfigPath, "path to config file")
	flag.Parse()

	// ====================================================================
	// Config & Logger 초기화
	// ====================================================================
	//
	// Config는 기본값 + JSON 파일 병합으로 만들어지며 이후 불변이다.
	// 설정이 깨져 있으면 여기서 즉시 종료(fail-fast) — 로거 초기화
	// 이전이므로 stdlog로 남긴다.
	// ====================================================================
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[FATAL] config: %v", err)
	}

	if err := logger.Init(cfg); err != nil {
		log.Fatalf("[FATAL] logger: %v", err)
	}

	zlog.Info().
		Str("config", *configPath).
		Str("log_dir", cfg.LogDir).
		Str("report_dir", cfg.ReportDir).
		Int("report_size", cfg.ReportSize).
		Float64("max_errors_percent", cfg.MaxErrorsPercent).
		Msg("analyzer start")

	// ====================================================================
	// 파이프라인 실행
	// ====================================================================
	m := metrics.New()

	runErr := analyzer.New(cfg, m).Run()

	// 실행 결과와 무관하게 카운터 스냅샷은 항상 남긴다.
	zlog.Info().Str("metrics", m.String()).Msg("run finished")

	// ====================================================================
	// 결과(outcome) → exit code 사상
	// ====================================================================
	//
	// "로그 없음"과 "리포트 이미 존재"는 정상 종료다. 이 둘을 제외한
	// 모든 에러는 fault로서 non-zero로 끝난다 — 에러율 게이트 초과도
	// 데이터 품질 장애이므로 orchestrator(cron 알림 등)가 감지할 수
	// 있어야 한다. 전부 삼키고 0으로 끝내는 동작은 의도적으로 하지 않는다.
	// ====================================================================
	switch {
	case runErr == nil:
		// 리포트 생성 완료

	case errors.Is(runErr, locator.ErrNoLogFound):
		zlog.Info().Msg("no log files to process, exit")

	case errors.Is(runErr, report.ErrReportExists):
		zlog.Info().Msg("report already exists, exit")

	case errors.Is(runErr, extractor.ErrThresholdExceeded),
		errors.Is(runErr, extractor.ErrEmptyInput):
		zlog.Error().Err(runErr).Msg("input data quality failure, aborting")
		os.Exit(1)

	default:
		zlog.Error().Err(runErr).Msg("analyzer run failed")
		os.Exit(1)
	}
}
