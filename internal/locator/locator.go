// internal/locator/locator.go
package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"logreport/internal/model"
)

// ErrNoLogFound 는 LOG_DIR에 패턴에 맞는 로그 파일이 하나도 없는 경우.
// 장애가 아니라 "처리할 입력이 아직 없다"는 정상 종료 신호다.
var ErrNoLogFound = errors.New("no log file found")

// 입력 파일명 규칙: nginx-access-ui.log-YYYYMMDD[.gz]
// 날짜 8자리와 압축 suffix 외에는 어떤 변형도 허용하지 않는다.
// (.bz2 등 다른 suffix가 붙은 파일은 후보에서 제외된다.)
var namePattern = regexp.MustCompile(`^nginx-access-ui\.log-(\d{8})(\.gz)?$`)

const dateLayout = "20060102"

// FindLatest
// ------------------------------------------------------------
// logDir를 스캔해서 파일명에 박힌 날짜가 가장 최신인 후보를 고른다.
//
//   - 패턴에 맞지 않는 파일명은 조용히 무시 (에러 아님).
//   - 8자리가 달력상 유효하지 않은 날짜(예: 20211399)여도 무시.
//   - 후보가 하나도 없으면 ErrNoLogFound.
//
// 같은 날짜의 압축/비압축 파일이 공존하는 경우 디렉토리 나열 순서에
// 기대면 플랫폼마다 결과가 달라진다. 재현성을 위해 tie-break는
// "사전순으로 더 큰 파일명"으로 고정한다. 즉 같은 날짜면
// nginx-access-ui.log-20211207.gz 가 .gz 없는 쪽을 이긴다.
func FindLatest(logDir string) (model.LogFileEntry, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return model.LogFileEntry{}, fmt.Errorf("scan log dir %s: %w", logDir, err)
	}

	var (
		best  model.LogFileEntry
		found bool
	)

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		m := namePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}

		date, perr := time.Parse(dateLayout, m[1])
		if perr != nil {
			// 자릿수는 맞지만 달력상 불가능한 날짜 → 후보 아님
			continue
		}

		take := false
		switch {
		case !found:
			take = true
		case date.After(best.Date):
			take = true
		case date.Equal(best.Date) && e.Name() > best.Name:
			// 동일 날짜 tie-break: 사전순 최대 파일명
			take = true
		}

		if take {
			best = model.LogFileEntry{
				Path: filepath.Join(logDir, e.Name()),
				Name: e.Name(),
				Gzip: m[2] != "",
				Date: date,
			}
			found = true
		}
	}

	if !found {
		return model.LogFileEntry{}, fmt.Errorf("%w in %s", ErrNoLogFound, logDir)
	}

	return best, nil
}
