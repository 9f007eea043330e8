package console

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a logger writing to w. ENVIRONMENT=development selects
// zap's human readable development encoding, JSON lines otherwise.
func NewLogger(w io.Writer, level string) (*zap.SugaredLogger, error) {

	lvl := zapcore.InfoLevel
	if level != "" {
		var err error
		if lvl, err = zapcore.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("invalid log level '%s': %w", level, err)
		}
	}

	var enc zapcore.Encoder
	var opts []zap.Option

	if os.Getenv("ENVIRONMENT") == "development" {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		opts = append(opts, zap.Development(), zap.AddCaller())
	} else {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	return zap.New(
		zapcore.NewCore(enc, zapcore.AddSync(w), lvl),
		opts...,
	).Sugar(), nil
}
