// internal/extractor/extractor.go
package extractor

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync/atomic"

	"logreport/internal/metrics"
	"logreport/internal/model"

	zlog "github.com/rs/zerolog/log"
)

var (
	// ErrThresholdExceeded 는 파싱 실패율이 MAX_ERRORS_PERCENT를
	// "초과"한 경우. 데이터 품질 장애로 본다 — 부분 결과는 내보내지 않는다.
	ErrThresholdExceeded = errors.New("max errors percent exceeded")

	// ErrEmptyInput 은 입력에서 단 한 줄도 읽지 못한 경우.
	// 0으로 나누는 에러율 계산을 막기 위한 명시적 가드이며, 장애로 본다.
	ErrEmptyInput = errors.New("empty input: no lines read")
)

var (
	// 요청 경로 토큰: "/segment" 그룹 1개 이상의 연속.
	// segment는 단어 문자와 ? = _ & - 만 허용.
	// \B 로 "단어 경계가 아닌 위치"에서 시작하게 해서
	// HTTP/1.1 같은 토큰 내부의 슬래시를 경로로 오인하지 않는다.
	urlPattern = regexp.MustCompile(`\B(?:/(?:[\w?=_&-]+))+`)

	// 요청 처리 시간: 줄 끝의 십진 소수 (초 단위, 부호 없음 → 항상 비음수)
	timePattern = regexp.MustCompile(`\d+\.\d+$`)
)

// Extraction
// ------------------------------------------------------------
// 한 줄에 대한 추출 결과.
// "URL이 있었는지" / "duration이 있었는지"를 각각 명시적인 bool로
// 들고 있어, 줄이 카운트는 되지만 샘플은 안 되는 경우를
// truthiness 검사 없이 코드와 테스트에서 그대로 드러낸다.
type Extraction struct {
	URL      string  // HasURL일 때만 유효
	Duration float64 // HasDuration일 때만 유효 (초)

	HasURL      bool
	HasDuration bool
}

// Parsed는 샘플로 기록 가능한 줄인지 (둘 다 추출 성공) 여부.
func (e Extraction) Parsed() bool {
	return e.HasURL && e.HasDuration
}

// ExtractLine은 한 줄에서 요청 경로와 duration을 독립적으로 추출한다.
// 어느 한쪽이 없어도 에러가 아니다 — 결과에 그대로 표시될 뿐이다.
func ExtractLine(line string) Extraction {
	var ex Extraction

	if loc := urlPattern.FindStringIndex(line); loc != nil {
		ex.URL = line[loc[0]:loc[1]]
		ex.HasURL = true
	}

	if m := timePattern.FindString(line); m != "" {
		// 패턴상 부호/지수 없는 십진 소수만 매칭되므로
		// 여기서의 파싱 실패는 overflow뿐이다. 그 경우 duration 없음 처리.
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			ex.Duration = v
			ex.HasDuration = true
		}
	}

	return ex
}

// LineSource 는 Collect가 소비하는 줄 시퀀스.
// reader.LineReader가 이 계약을 만족한다.
type LineSource interface {
	Next() (string, bool)
	Err() error
}

// Collect
// ------------------------------------------------------------
// 줄 시퀀스를 끝까지 소비하면서 endpoint → latency 샘플을 쌓는다.
// 모든 줄은 파싱 성공 여부와 무관하게 total 카운트에 들어간다.
//
// 입력 소진 후 에러율 게이트를 평가한다:
//
//	errors_percent = 100 * (1 - parsed/total)
//
//   - total == 0          → ErrEmptyInput (명시적 0-나눗셈 가드)
//   - errors > threshold  → ErrThresholdExceeded, RawSamples는 버려진다
//   - errors == threshold → 통과 (게이트는 strictly-greater)
//
// 게이트에 걸리면 집계·리포트 단계는 절대 실행되지 않는다.
func Collect(src LineSource, maxErrorsPercent float64, m *metrics.Metrics) (*model.RawSamples, error) {
	raw := model.NewRawSamples()

	var total, parsed int64

	for {
		line, ok := src.Next()
		if !ok {
			break
		}
		total++

		ex := ExtractLine(line)
		if ex.Parsed() {
			parsed++
			raw.Add(ex.URL, ex.Duration)
		}
	}

	atomic.AddInt64(&m.LinesReadTotal, total)
	atomic.AddInt64(&m.LinesParsedTotal, parsed)
	atomic.AddInt64(&m.LinesUnparsedTotal, total-parsed)

	// 소비 도중 I/O 에러가 있었으면 게이트보다 우선한다.
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("read log lines: %w", err)
	}

	if total == 0 {
		return nil, ErrEmptyInput
	}

	successPercent := 100 * float64(parsed) / float64(total)
	errorsPercent := 100 - successPercent

	zlog.Info().
		Int64("parsed", parsed).
		Int64("total", total).
		Float64("success_percent", successPercent).
		Msg("log lines parsed")

	if errorsPercent > maxErrorsPercent {
		return nil, fmt.Errorf("%w: max=%v current=%.3f",
			ErrThresholdExceeded, maxErrorsPercent, errorsPercent)
	}

	atomic.AddInt64(&m.SamplesTotal, int64(raw.Total()))
	atomic.AddInt64(&m.EndpointsTotal, int64(raw.Len()))

	return raw, nil
}
