// Package log builds the process-wide zap logger.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	rotate "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"qbloch/conf"
)

// New builds a logger from conf. With both outputs disabled it returns a
// no-op logger.
func New(c *conf.Conf) (*zap.Logger, error) {
	var encoder zapcore.Encoder
	if c.DevMode {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		ec.TimeKey = "timestamp"
		encoder = zapcore.NewJSONEncoder(ec)
	}
	level := zap.NewAtomicLevelAt(parseLevel(c.LogLevel))

	cores := []zapcore.Core{}
	if c.EnableFileLog {
		rotator, err := makeRotator(c.LogDir, c.LogRotationMaxDays)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), level))
	}
	if !c.DisableStdoutLog {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level))
	}
	if len(cores) == 0 {
		return zap.NewNop(), nil
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func makeRotator(dirPath string, rotationMaxDays int) (*rotate.RotateLogs, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		return nil, errors.Wrapf(err, "log directory %s", dirPath)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s is not a directory", dirPath)
	}
	if info.Mode().Perm()&(1<<uint(7)) == 0 {
		return nil, errors.Errorf("%s is not a writable directory", dirPath)
	}
	rotator, err := rotate.New(
		filepath.Join(dirPath, "qbloch-%Y-%m-%d.log"),
		rotate.WithMaxAge(time.Duration(rotationMaxDays)*24*time.Hour),
		rotate.WithRotationTime(time.Hour))
	if err != nil {
		return nil, errors.Wrap(err, "create rotator")
	}
	return rotator, nil
}

// Setup builds a logger from conf and installs it as the global zap logger.
// Callers should Sync the returned logger before exiting.
func Setup(c *conf.Conf) (*zap.Logger, error) {
	logger, err := New(c)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	zap.L().Debug("Starting logger")
	zap.L().Debug(fmt.Sprintf("DevMode is %t", c.DevMode))
	if c.EnableFileLog {
		zap.L().Debug(fmt.Sprintf("Log rotation max days is %d", c.LogRotationMaxDays))
	}
	return logger, nil
}
