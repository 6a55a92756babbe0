package extractor

import (
	"errors"
	"testing"

	"logreport/internal/metrics"

	"github.com/stretchr/testify/require"
)

const (
	goodLine = `192.168.1.1 -  - [30/Nov/2021:05:41:23 +0300] "GET /test HTTP/1.1" 200 9134 "-" "-" "-" "-" "-" 0.01`
	badLine  = `192.168.1.1 -  - [30/Nov/2021:05:41:23 +0300] "GET __ HTTP/1.1" 200 9134 "-" "-" "-" "-" "-" ___`
)

// sliceSource 는 테스트용 LineSource.
type sliceSource struct {
	lines []string
	pos   int
	err   error
}

func (s *sliceSource) Next() (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.pos]
	s.pos++
	return line, true
}

func (s *sliceSource) Err() error { return s.err }

func TestExtractLine_BothTokens(t *testing.T) {
	t.Parallel()

	ex := ExtractLine(goodLine)
	require.True(t, ex.HasURL)
	require.True(t, ex.HasDuration)
	require.True(t, ex.Parsed())
	require.Equal(t, "/test", ex.URL)
	require.Equal(t, 0.01, ex.Duration)
}

func TestExtractLine_QueryStylePath(t *testing.T) {
	t.Parallel()

	ex := ExtractLine(`"GET /api/v2/banner?id=123&page_size=30 HTTP/1.1" 200 1.392`)
	require.True(t, ex.Parsed())
	require.Equal(t, "/api/v2/banner?id=123&page_size=30", ex.URL)
	require.Equal(t, 1.392, ex.Duration)
}

func TestExtractLine_MissingDuration(t *testing.T) {
	t.Parallel()

	// duration 토큰이 줄 끝에 없으면 URL만 있어도 샘플이 아니다
	ex := ExtractLine(`"GET /test HTTP/1.1" 200 9134`)
	require.True(t, ex.HasURL)
	require.False(t, ex.HasDuration)
	require.False(t, ex.Parsed())
}

func TestExtractLine_MissingURL(t *testing.T) {
	t.Parallel()

	// HTTP/1.1 내부의 슬래시는 경로 토큰으로 취급되지 않아야 한다
	ex := ExtractLine(`"GET __ HTTP/1.1" 200 0.133`)
	require.False(t, ex.HasURL)
	require.True(t, ex.HasDuration)
	require.False(t, ex.Parsed())
}

func TestExtractLine_EmptyLine(t *testing.T) {
	t.Parallel()

	ex := ExtractLine("")
	require.False(t, ex.HasURL)
	require.False(t, ex.HasDuration)
	require.False(t, ex.Parsed())
}

func TestCollect_AllParsed(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	src := &sliceSource{lines: []string{goodLine, goodLine, goodLine}}

	raw, err := Collect(src, 0, m)
	require.NoError(t, err)

	require.Equal(t, 3, raw.Total())
	require.Equal(t, []string{"/test"}, raw.URLs())
	require.Equal(t, []float64{0.01, 0.01, 0.01}, raw.Samples("/test"))

	require.Equal(t, int64(3), m.LinesReadTotal)
	require.Equal(t, int64(3), m.LinesParsedTotal)
	require.Equal(t, int64(0), m.LinesUnparsedTotal)
	require.Equal(t, int64(3), m.SamplesTotal)
	require.Equal(t, int64(1), m.EndpointsTotal)
}

func TestCollect_InsertionOrderPreserved(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	src := &sliceSource{lines: []string{
		`"GET /b HTTP/1.1" 200 0.1`,
		`"GET /a HTTP/1.1" 200 0.2`,
		`"GET /b HTTP/1.1" 200 0.3`,
		`"GET /c HTTP/1.1" 200 0.4`,
	}}

	raw, err := Collect(src, 0, m)
	require.NoError(t, err)

	// 최초 등장 순서가 그대로 유지되어야 한다 (map 순회 순서 아님)
	require.Equal(t, []string{"/b", "/a", "/c"}, raw.URLs())
	require.Equal(t, []float64{0.1, 0.3}, raw.Samples("/b"))
}

func TestCollect_UnparsedLineCountedButNotSampled(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	src := &sliceSource{lines: []string{goodLine, badLine, goodLine}}

	raw, err := Collect(src, 50, m)
	require.NoError(t, err)

	require.Equal(t, 2, raw.Total())
	require.Equal(t, int64(3), m.LinesReadTotal)
	require.Equal(t, int64(2), m.LinesParsedTotal)
	require.Equal(t, int64(1), m.LinesUnparsedTotal)
}

func TestCollect_ThresholdExceeded(t *testing.T) {
	t.Parallel()

	// 3줄 중 1줄 실패 = 33.3% > 1% → 게이트 작동, 샘플 폐기
	m := metrics.New()
	src := &sliceSource{lines: []string{badLine, goodLine, goodLine}}

	raw, err := Collect(src, 1, m)
	require.ErrorIs(t, err, ErrThresholdExceeded)
	require.Nil(t, raw)

	// 게이트에 걸려도 줄 카운터는 남는다 (집계 카운터는 0)
	require.Equal(t, int64(3), m.LinesReadTotal)
	require.Equal(t, int64(0), m.SamplesTotal)
}

func TestCollect_ThresholdExactlyEqualProceeds(t *testing.T) {
	t.Parallel()

	// 4줄 중 1줄 실패 = 정확히 25% — 게이트는 strictly-greater이므로 통과
	m := metrics.New()
	src := &sliceSource{lines: []string{badLine, goodLine, goodLine, goodLine}}

	raw, err := Collect(src, 25, m)
	require.NoError(t, err)
	require.Equal(t, 3, raw.Total())
}

func TestCollect_EmptyInput(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	raw, err := Collect(&sliceSource{}, 100, m)

	require.ErrorIs(t, err, ErrEmptyInput)
	require.Nil(t, raw)
}

func TestCollect_SourceErrorWinsOverGate(t *testing.T) {
	t.Parallel()

	// 읽기 도중 I/O 에러가 났으면 게이트 판정보다 우선해서 실패한다
	ioErr := errors.New("disk gone")
	m := metrics.New()
	src := &sliceSource{lines: []string{goodLine}, err: ioErr}

	raw, err := Collect(src, 100, m)
	require.ErrorIs(t, err, ioErr)
	require.Nil(t, raw)
}
