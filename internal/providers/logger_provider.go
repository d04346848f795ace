package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"tankwatch/internal/structures"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
	TypeFetch
	TypeExport
)

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

func GetLogTypeByRequestType(method string) TypeEnum {
	if method == "POST" {
		return TypePost
	}
	return TypeGet
}

func typeName(t TypeEnum) string {
	switch t {
	case TypeGet:
		return "get"
	case TypePost:
		return "post"
	case TypeFetch:
		return "fetch"
	case TypeExport:
		return "export"
	default:
		return "app"
	}
}

type LogProvider struct {
	appLog    zerolog.Logger
	accessLog zerolog.Logger
	jobLog    zerolog.Logger
	files     []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("unknown log level %q: %w", conf.Logger.Level, err)
	}

	mode := os.FileMode(0644)
	if conf.Logger.Mode != "" {
		parsed, err := strconv.ParseUint(conf.Logger.Mode, 8, 32)
		if err != nil {
			return nil, fmt.Errorf("log file mode %q is not octal: %w", conf.Logger.Mode, err)
		}
		mode = os.FileMode(parsed)
	}

	lp := &LogProvider{}
	open := func(name string) (zerolog.Logger, error) {
		path := filepath.Join(conf.Logger.Dir, name)
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, mode)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("unable to open log file %s: %w", path, err)
		}
		lp.files = append(lp.files, file)
		return zerolog.New(file).Level(level).With().Timestamp().Logger(), nil
	}

	if lp.appLog, err = open("app.log"); err != nil {
		lp.Close()
		return nil, err
	}
	if lp.accessLog, err = open("access.log"); err != nil {
		lp.Close()
		return nil, err
	}
	if lp.jobLog, err = open("jobs.log"); err != nil {
		lp.Close()
		return nil, err
	}

	if conf.Debug {
		console := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
		lp.appLog = console
		lp.accessLog = console
		lp.jobLog = console
	}

	return lp, nil
}

func (lp *LogProvider) logger(t TypeEnum) *zerolog.Logger {
	switch t {
	case TypeGet, TypePost:
		return &lp.accessLog
	case TypeFetch, TypeExport:
		return &lp.jobLog
	default:
		return &lp.appLog
	}
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Error().Str("type", typeName(t)).Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Warn().Str("type", typeName(t)).Msgf(format, args...)
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Debug().Str("type", typeName(t)).Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).Info().Str("type", typeName(t)).Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	lp.logger(t).WithLevel(zerolog.FatalLevel).Str("type", typeName(t)).Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, f := range lp.files {
		_ = f.Close()
	}
	lp.files = nil
}
