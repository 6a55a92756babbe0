// internal/aggregate/aggregate.go
package aggregate

import (
	"sort"

	"logreport/internal/model"
)

// Compute
// ------------------------------------------------------------
// RawSamples를 endpoint별 통계 행으로 접는다.
//
//   - 행 순서는 RawSamples의 최초 등장 순서 그대로다.
//     (리포트 단계에서 time_sum 동률 행의 상대 순서를 이 순서로 유지한다)
//   - 어떤 endpoint도 걸러내거나 자르지 않는다. 상위 N 절단은
//     리포트 단계의 책임이다.
//
// 비어 있지 않은 입력을 전제로 한다. 0줄 입력은 추출 단계의
// 에러 게이트(ErrEmptyInput)가 이미 걸러냈다.
func Compute(raw *model.RawSamples) []model.StatRow {
	totalCount := raw.Total()

	// 전체 latency 합 — time_perc의 분모
	var totalTime float64
	for _, url := range raw.URLs() {
		for _, t := range raw.Samples(url) {
			totalTime += t
		}
	}

	rows := make([]model.StatRow, 0, raw.Len())

	for _, url := range raw.URLs() {
		times := raw.Samples(url)
		count := len(times)

		var sum, max float64
		for i, t := range times {
			sum += t
			if i == 0 || t > max {
				max = t
			}
		}

		rows = append(rows, model.StatRow{
			URL:       url,
			Count:     count,
			CountPerc: 100 * float64(count) / float64(totalCount),
			TimeAvg:   sum / float64(count),
			TimeMax:   max,
			TimeMed:   median(times),
			TimePerc:  100 * sum / totalTime,
			TimeSum:   sum,
		})
	}

	return rows
}

// median은 표준 정의의 중앙값을 계산한다.
// 짝수 개면 가운데 두 값의 평균. 입력 slice는 변경하지 않는다.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
