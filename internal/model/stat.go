// internal/model/stat.go
package model

import "time"

// LogFileEntry
// ------------------------------------------------------------
// LogLocator가 선택한 단일 입력 로그 파일을 식별하는 구조체.
// 한 번의 실행(run)당 정확히 한 번 생성되며 이후 변경되지 않는다.
//
// Date는 파일명에 포함된 8자리(YYYYMMDD) 토큰에서 파싱된 값이며,
// 파싱에 실패한 파일은 애초에 LogFileEntry로 만들어지지 않는다.
type LogFileEntry struct {
	Path string    // 로그 파일 절대/상대 경로 (LOG_DIR + 파일명)
	Name string    // 파일명 (예: nginx-access-ui.log-20211207.gz)
	Gzip bool      // .gz 압축 여부
	Date time.Time // 파일명에서 파싱한 날짜 (UTC, 시분초 0)
}

// RawSamples
// ------------------------------------------------------------
// endpoint(요청 경로) → latency 샘플(초) 목록의 순서 보존 매핑.
//
// 일반 map은 순회 순서가 비결정적이므로 최초 등장 순서를 별도
// slice(order)로 유지한다. 이 순서는 리포트 단계의 tie-break
// (time_sum이 같은 행의 상대 순서)에 그대로 쓰이기 때문에
// 반드시 보존되어야 한다.
type RawSamples struct {
	order   map[string]int // endpoint → urls 내 인덱스
	urls    []string       // 최초 등장 순서
	samples [][]float64    // urls와 같은 인덱스의 샘플 목록
	total   int            // 전체 샘플 수 (모든 endpoint 합)
}

func NewRawSamples() *RawSamples {
	return &RawSamples{order: make(map[string]int)}
}

// Add는 파싱에 성공한 한 줄의 샘플을 추가한다.
// 처음 보는 endpoint는 등장 순서 목록의 끝에 붙는다.
func (r *RawSamples) Add(url string, seconds float64) {
	i, ok := r.order[url]
	if !ok {
		i = len(r.urls)
		r.order[url] = i
		r.urls = append(r.urls, url)
		r.samples = append(r.samples, nil)
	}
	r.samples[i] = append(r.samples[i], seconds)
	r.total++
}

// URLs는 endpoint 목록을 최초 등장 순서대로 반환한다.
func (r *RawSamples) URLs() []string {
	return r.urls
}

// Samples는 해당 endpoint의 latency 샘플을 추가된 순서대로 반환한다.
// 등록되지 않은 endpoint면 nil.
func (r *RawSamples) Samples(url string) []float64 {
	i, ok := r.order[url]
	if !ok {
		return nil
	}
	return r.samples[i]
}

// Len은 endpoint 개수를 반환한다.
func (r *RawSamples) Len() int {
	return len(r.urls)
}

// Total은 전체 샘플 개수(= 파싱 성공 줄 수)를 반환한다.
func (r *RawSamples) Total() int {
	return r.total
}

// StatRow
// ------------------------------------------------------------
// endpoint 하나에 대한 집계 결과 한 행.
// Aggregator가 생성한 뒤로는 불변이며, ReportWriter가 JSON 배열로
// 직렬화하여 리포트 템플릿에 삽입한다.
//
// 필드 선언 순서가 곧 리포트 JSON의 키 순서가 되므로 바꾸지 말 것.
type StatRow struct {
	URL       string  `json:"url"`        // 집계 키 (요청 경로)
	Count     int     `json:"count"`      // 샘플 수 (≥ 1)
	CountPerc float64 `json:"count_perc"` // 전체 파싱 줄 대비 비율(%)
	TimeAvg   float64 `json:"time_avg"`   // 평균 latency (초)
	TimeMax   float64 `json:"time_max"`   // 최대 latency (초)
	TimeMed   float64 `json:"time_med"`   // 중앙값 latency (초)
	TimePerc  float64 `json:"time_perc"`  // 전체 latency 합 대비 비율(%)
	TimeSum   float64 `json:"time_sum"`   // latency 합 (초)
}
