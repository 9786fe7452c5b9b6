package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewDiagnostics creates the logger that reports wryte's own failures:
// sink write errors, metadata fetch failures and refused operations.
// Records at warn level and above are written to w (default: stderr).
func NewDiagnostics(w io.Writer) *zap.Logger {
	if w == nil {
		w = os.Stderr
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	c := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.WarnLevel,
	)
	return zap.New(c).Named("wryte")
}
