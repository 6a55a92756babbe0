// internal/logger/log.go
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"logreport/internal/config"

	stdlog "log"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Init
//
// 프로세스 시작 시 한 번만 호출되는 로거 초기화 함수입니다.
// Config 설정에 따라 '개발자용 화면' 또는 '파일/파이프라인용 JSON 로그'로
// 자동으로 형태를 바꾸어 설정합니다.
//
// [주요 기능]
//
//  1. 로그 포맷 자동 전환:
//     - 개발 환경 (LOG_PRETTY=true): 컬러 텍스트로 출력 (가독성 위주)
//     - 운영 환경 (기본): JSON 포맷으로 출력 (수집/검색 위주)
//
//  2. 진단 로그 파일 (LOG_FILE):
//     - 경로가 설정되면 stdout 대신 해당 파일에 append로 기록합니다.
//     - cron 등으로 주기 실행할 때 실행 이력을 파일로 남기는 용도.
//     - 파일 출력은 항상 JSON 포맷 (pretty 설정 무시).
//
//  3. 공통 필드 자동 추가:
//     - 모든 로그에 "service" 필드가 자동으로 붙습니다.
//
// 사용 예:
//
//	if err := logger.Init(cfg); err != nil { ... }
//	log.Info().Msg("analyzer start")
func Init(cfg config.Config) error {

	// -------------------------------------------------------------------
	// 1) 로그 레벨 결정 (최소 출력 기준)
	// -------------------------------------------------------------------
	// 설정된 레벨보다 낮은 중요도의 로그는 아예 출력하지 않습니다.
	level := zerolog.InfoLevel
	if l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.LogLevel))); err == nil {
		level = l
	}

	zerolog.SetGlobalLevel(level)

	// -------------------------------------------------------------------
	// 2) 출력 대상 결정 (파일 vs 화면)
	// -------------------------------------------------------------------
	var w io.Writer

	switch {
	case cfg.LogFile != "":
		// [진단 로그 파일]
		// 한 번 실행하고 끝나는 프로세스이므로 파일 핸들은
		// 프로세스 종료와 함께 OS가 회수한다.
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", cfg.LogFile, err)
		}
		w = f

	case cfg.LogPretty:
		// [Local 개발 환경]
		// 사람이 눈으로 터미널을 볼 때 편하도록 색상과 정렬을 적용합니다.
		w = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}

	default:
		// [운영 환경]
		// 수집 시스템이 분석하기 좋은 표준 JSON 포맷 그대로 stdout으로.
		w = os.Stdout
	}

	// -------------------------------------------------------------------
	// 3) 기본 Logger 생성 (공통 태그 부착)
	// -------------------------------------------------------------------
	zlog.Logger = zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", config.ServiceName).
		Logger()

	// Go 기본 라이브러리(log.Println 등)를 쓰더라도
	// 위에서 만든 zerolog 설정을 따르도록 연결해줍니다.
	stdlog.SetFlags(0)
	stdlog.SetOutput(zlog.Logger)

	return nil
}
