// internal/reader/reader.go
package reader

import (
	"bufio"
	"fmt"
	"os"

	"github.com/klauspost/compress/gzip"
)

// 한 줄 최대 길이. access-log 한 줄이 이보다 길면 데이터가 망가진 것으로
// 보고 읽기를 에러로 끝낸다 (bufio.ErrTooLong).
const maxLineBytes = 1024 * 1024

// LineReader
// ------------------------------------------------------------
// 로그 파일의 줄 단위 lazy 순차 reader.
//
//   - .gz 파일이면 투명하게 압축을 풀면서 읽는다 (klauspost gzip).
//   - 파일 핸들은 "정확히 한 번" 해제된다:
//     정상 소진 시 Next()가 내부적으로 Close() 하고,
//     조기 중단 시 호출자가 Close() 한다. 두 번 불려도 안전.
//   - 파일 끝의 빈 줄(마지막 개행 이후 내용 없음)은 시퀀스에 포함되지 않는다.
//     개행으로 끝나는 중간 빈 줄("\n\n")은 빈 문자열로 그대로 나온다.
//
// mid-stream 재개는 지원하지 않는다. 다시 읽으려면 Open부터 다시.
type LineReader struct {
	file    *os.File
	gz      *gzip.Reader // 비압축 파일이면 nil
	scanner *bufio.Scanner
	closed  bool
	err     error
}

// Open은 path를 열고 gzipped 여부에 따라 압축 해제 스트림을 구성한다.
func Open(path string, gzipped bool) (*LineReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}

	r := &LineReader{file: f}

	if gzipped {
		gz, err := gzip.NewReader(f)
		if err != nil {
			// gzip 헤더가 깨진 경우 — 핸들 누수 없이 즉시 닫는다.
			_ = f.Close()
			return nil, fmt.Errorf("open gzip log %s: %w", path, err)
		}
		r.gz = gz
		r.scanner = bufio.NewScanner(gz)
	} else {
		r.scanner = bufio.NewScanner(f)
	}

	r.scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	return r, nil
}

// Next는 다음 줄을 반환한다. 더 이상 줄이 없으면 ("", false)를
// 반환하며 이때 내부 리소스는 이미 해제된 상태다.
// 읽기 도중 에러가 났는지는 Err()로 확인한다.
func (r *LineReader) Next() (string, bool) {
	if r.closed {
		return "", false
	}

	if r.scanner.Scan() {
		return r.scanner.Text(), true
	}

	// 정상 소진 또는 읽기 에러 → 즉시 리소스 해제
	r.err = r.scanner.Err()
	_ = r.Close()

	return "", false
}

// Err는 줄을 읽는 도중 발생한 에러를 반환한다 (정상 EOF는 nil).
func (r *LineReader) Err() error {
	return r.err
}

// Close는 압축 스트림과 파일 핸들을 해제한다. 멱등이다.
func (r *LineReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var firstErr error
	if r.gz != nil {
		if err := r.gz.Close(); err != nil {
			firstErr = err
		}
	}
	if err := r.file.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}
