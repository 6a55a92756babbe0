// internal/report/report.go
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"logreport/internal/config"
	"logreport/internal/model"

	json "github.com/goccy/go-json"
)

// ErrReportExists 는 같은 날짜의 리포트가 이미 존재하는 경우.
// 리포트 생성은 날짜당 최대 1회 — 재실행은 no-op으로 끝나는 정상 신호다.
var ErrReportExists = errors.New("report already exists")

// 템플릿에서 통계 테이블 JSON으로 치환되는 placeholder.
// ${table_json} 형태를 먼저 등록해야 $table_json 매칭이
// 중괄호 형태를 반쪽만 먹는 일이 없다.
const placeholderName = "table_json"

const reportDateLayout = "2006.01.02"

// Writer
// ------------------------------------------------------------
// 집계 결과를 리포트 파일로 만드는 컴포넌트.
//
//   - time_sum 내림차순 상위 N행만 내보낸다.
//     동률 행은 집계 순서(= endpoint 최초 등장 순서)를 유지한다 (stable).
//   - 같은 날짜 리포트가 이미 있으면 아무것도 하지 않는다 (멱등).
//   - 쓰기는 임시 파일 + rename. 외부에서 동시에 실행돼도
//     최종 경로에서 절반만 쓰인 리포트가 보이는 일은 없다.
type Writer struct {
	dir          string // REPORT_DIR
	size         int    // REPORT_SIZE (최대 행 수)
	templatePath string // REPORT_TEMPLATE
}

func NewWriter(cfg config.Config) *Writer {
	return &Writer{
		dir:          cfg.ReportDir,
		size:         cfg.ReportSize,
		templatePath: cfg.ReportTemplate,
	}
}

// Filename은 날짜로부터 결정적인 리포트 파일명을 만든다.
// 확장자는 템플릿 파일의 확장자를 그대로 따른다.
//
//	report-2021.12.07.html
func (w *Writer) Filename(date time.Time) string {
	return fmt.Sprintf("report-%s%s", date.Format(reportDateLayout), filepath.Ext(w.templatePath))
}

// Path는 리포트 파일의 최종 경로를 반환한다.
func (w *Writer) Path(date time.Time) string {
	return filepath.Join(w.dir, w.Filename(date))
}

// Exists는 해당 날짜의 리포트가 이미 생성되어 있는지 확인한다.
func (w *Writer) Exists(date time.Time) bool {
	_, err := os.Stat(w.Path(date))
	return err == nil
}

// Write
// ------------------------------------------------------------
// 통계 행을 직렬화해 템플릿에 치환하고 리포트 파일을 생성한다.
// 생성된 파일 경로를 반환한다.
//
//   - 이미 존재하면 ErrReportExists (파일은 건드리지 않는다).
//   - rows는 호출자 소유 — 정렬은 복사본에서 한다.
func (w *Writer) Write(rows []model.StatRow, date time.Time) (string, error) {
	path := w.Path(date)

	if w.Exists(date) {
		return path, fmt.Errorf("%w: %s", ErrReportExists, path)
	}

	// --- 1) time_sum 내림차순 stable 정렬 후 상위 N 절단 ---
	top := make([]model.StatRow, len(rows))
	copy(top, rows)

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TimeSum > top[j].TimeSum
	})

	if len(top) > w.size {
		top = top[:w.size]
	}

	// --- 2) JSON 배열 직렬화 (필드 순서는 StatRow 선언 순서) ---
	table, err := json.Marshal(top)
	if err != nil {
		return "", fmt.Errorf("marshal report table: %w", err)
	}

	// --- 3) 템플릿 placeholder 치환 ---
	tmpl, err := os.ReadFile(w.templatePath)
	if err != nil {
		return "", fmt.Errorf("read report template %s: %w", w.templatePath, err)
	}

	rendered := strings.NewReplacer(
		"${"+placeholderName+"}", string(table),
		"$"+placeholderName, string(table),
	).Replace(string(tmpl))

	// --- 4) 임시 파일에 쓰고 최종 경로로 rename ---
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir %s: %w", w.dir, err)
	}

	tmp, err := os.CreateTemp(w.dir, ".report-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp report: %w", err)
	}

	if _, err := tmp.WriteString(rendered); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write temp report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp report: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("rename report into place: %w", err)
	}

	return path, nil
}
