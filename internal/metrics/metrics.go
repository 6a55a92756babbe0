package metrics

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics 는 한 번의 분석 실행(run) 상태를 나타내는 카운터 모음이다.
// 실행 종료 시점에 String() 결과를 로그로 남겨 운영자가
// "이번 실행이 무엇을 얼마나 처리했는지"를 한눈에 확인할 수 있게 한다.
type Metrics struct {
	// ======================
	// 입력(파싱) 레벨 지표
	// ======================

	// LinesReadTotal
	// - 입력 로그 파일에서 읽은 "모든" 줄 수.
	// - 파싱 성공/실패와 무관하게 한 줄 읽을 때마다 1씩 증가한다.
	// - 에러율 계산의 분모가 되는 값.
	LinesReadTotal int64

	// LinesParsedTotal
	// - URL 토큰과 duration 토큰을 "둘 다" 추출한 줄 수.
	// - 이 줄들만 RawSamples에 샘플로 기록된다.
	LinesParsedTotal int64

	// LinesUnparsedTotal
	// - URL 또는 duration 추출에 실패한 줄 수.
	// - LinesReadTotal - LinesParsedTotal 과 항상 일치해야 한다.
	// - 이 값 / LinesReadTotal 이 MAX_ERRORS_PERCENT 게이트의 기준이 된다.
	LinesUnparsedTotal int64

	// ======================
	// 집계 레벨 지표
	// ======================

	// SamplesTotal
	// - RawSamples에 쌓인 latency 샘플 개수 (= LinesParsedTotal).
	SamplesTotal int64

	// EndpointsTotal
	// - 관측된 고유 endpoint 개수 (= 리포트 후보 행 수).
	EndpointsTotal int64

	// ======================
	// 리포트 레벨 지표
	// ======================

	// ReportsWrittenTotal
	// - 이번 실행에서 실제로 생성된 리포트 파일 수 (0 또는 1).
	ReportsWrittenTotal int64

	// ReportsSkippedTotal
	// - 동일 날짜 리포트가 이미 존재해서 생성을 건너뛴 횟수 (0 또는 1).
	// - 멱등성(idempotent generation)이 동작했다는 신호.
	ReportsSkippedTotal int64
}

func New() *Metrics {
	return &Metrics{}
}

func (m *Metrics) String() string {
	var sb strings.Builder
	sb.Grow(256)

	fmt.Fprintf(&sb, "lines_read_total=%d\n", atomic.LoadInt64(&m.LinesReadTotal))
	fmt.Fprintf(&sb, "lines_parsed_total=%d\n", atomic.LoadInt64(&m.LinesParsedTotal))
	fmt.Fprintf(&sb, "lines_unparsed_total=%d\n", atomic.LoadInt64(&m.LinesUnparsedTotal))

	fmt.Fprintf(&sb, "samples_total=%d\n", atomic.LoadInt64(&m.SamplesTotal))
	fmt.Fprintf(&sb, "endpoints_total=%d\n", atomic.LoadInt64(&m.EndpointsTotal))

	fmt.Fprintf(&sb, "reports_written_total=%d\n", atomic.LoadInt64(&m.ReportsWrittenTotal))
	fmt.Fprintf(&sb, "reports_skipped_total=%d\n", atomic.LoadInt64(&m.ReportsSkippedTotal))

	return sb.String()
}
