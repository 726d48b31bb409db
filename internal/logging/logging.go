package logging

import (
	"fmt"
	"io"
	"net"
	"os"
	"time"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"

	"microblog/internal/config"
)

// New builds the JSON logger used by every component. When a logstash
// address is configured the entries are also shipped over TCP.
func New(cfg config.LogConfig) (*logrus.Logger, error) {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg config.LogConfig, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	logger.SetLevel(level)

	if cfg.LogstashAddr != "" {
		conn, err := net.DialTimeout("tcp", cfg.LogstashAddr, 5*time.Second)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to logstash at %s: %w", cfg.LogstashAddr, err)
		}
		hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": "microblog-api"}))
		logger.AddHook(hook)
	}

	return logger, nil
}

// GormLogger routes gorm's query log through logrus. Slow queries are
// reported at warn level, everything else stays quiet unless the logger
// runs at debug.
func GormLogger(logger *logrus.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		level = gormlogger.Info
	}
	return gormlogger.New(logger, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
