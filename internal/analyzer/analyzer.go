// internal/analyzer/analyzer.go
package analyzer

import (
	"fmt"
	"sync/atomic"

	"logreport/internal/aggregate"
	"logreport/internal/config"
	"logreport/internal/extractor"
	"logreport/internal/locator"
	"logreport/internal/metrics"
	"logreport/internal/reader"
	"logreport/internal/report"

	zlog "github.com/rs/zerolog/log"
)

// Analyzer는 전체 분석 파이프라인을 제어한다.
//
//	locate → (리포트 존재 확인) → read+extract → aggregate → write
//
// 각 단계는 이전 단계의 출력을 전부 소비한 뒤 시작한다.
// (reader→extractor만 줄 단위 파이프라인)
//
// 파이프라인은 완전히 순차적 single-thread이며, 단계 간 공유
// mutable 상태가 없다. 실패한 상류 단계 위에서 리포트를 쓰는 일은
// 구조적으로 불가능하다 — 각 단계가 에러를 반환하면 즉시 중단된다.
type Analyzer struct {
	cfg     config.Config
	metrics *metrics.Metrics
	report  *report.Writer
}

// New는 설정과 메트릭 카운터로 파이프라인을 구성한다.
func New(cfg config.Config, m *metrics.Metrics) *Analyzer {
	return &Analyzer{
		cfg:     cfg,
		metrics: m,
		report:  report.NewWriter(cfg),
	}
}

// Run은 파이프라인을 한 번 실행한다.
//
// 반환 에러는 errors.Is로 구분 가능한 결과(outcome)다:
//   - locator.ErrNoLogFound        처리할 로그 없음 (benign)
//   - report.ErrReportExists       해당 날짜 리포트 이미 존재 (benign)
//   - extractor.ErrEmptyInput      0줄 입력 (fault)
//   - extractor.ErrThresholdExceeded  에러율 게이트 초과 (fault)
//   - 그 외                        I/O 장애 (fault)
//
// benign/fault를 exit code로 사상하는 일은 호출자(cmd) 몫이다.
func (a *Analyzer) Run() error {

	// --- 1) 최신 로그 파일 탐색 ---
	zlog.Info().Str("log_dir", a.cfg.LogDir).Msg("searching latest log file")

	entry, err := locator.FindLatest(a.cfg.LogDir)
	if err != nil {
		return err
	}

	zlog.Info().
		Str("path", entry.Path).
		Bool("gzip", entry.Gzip).
		Str("date", entry.Date.Format("2006-01-02")).
		Msg("latest log file selected")

	// --- 2) 멱등성 short-circuit: 리포트가 이미 있으면 읽지도 않는다 ---
	if a.report.Exists(entry.Date) {
		atomic.AddInt64(&a.metrics.ReportsSkippedTotal, 1)
		return fmt.Errorf("%w: %s", report.ErrReportExists, a.report.Path(entry.Date))
	}

	// --- 3) 줄 단위 읽기 + 추출 + 에러율 게이트 ---
	src, err := reader.Open(entry.Path, entry.Gzip)
	if err != nil {
		return err
	}
	// 정상 소진 시 reader가 스스로 닫는다. 이 defer는
	// Collect가 도중에 반환하는 경로를 위한 안전장치다 (Close는 멱등).
	defer src.Close()

	raw, err := extractor.Collect(src, a.cfg.MaxErrorsPercent, a.metrics)
	if err != nil {
		return err
	}

	// --- 4) endpoint별 통계 집계 ---
	rows := aggregate.Compute(raw)

	zlog.Info().Int("endpoints", len(rows)).Msg("statistics aggregated")

	// --- 5) 리포트 생성 ---
	path, err := a.report.Write(rows, entry.Date)
	if err != nil {
		return err
	}
	atomic.AddInt64(&a.metrics.ReportsWrittenTotal, 1)

	zlog.Info().Str("report", path).Msg("report created")

	return nil
}
