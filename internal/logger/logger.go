package logger

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It discards everything until Init is called.
var Log = zap.NewNop()

// Init builds the global logger. Debug switches to the human-readable
// development encoder and enables debug-level solver traces.
func Init(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// Named returns a child of the global logger scoped to one subsystem.
func Named(name string) *zap.Logger {
	return Log.Named(name)
}

// Sync flushes buffered entries. Errors from syncing stdout/stderr are ignored.
func Sync() {
	_ = Log.Sync()
}

// Vec encodes a vector as a three-element float array field.
func Vec(key string, v rl.Vector3) zap.Field {
	return zap.Float32s(key, []float32{v.X, v.Y, v.Z})
}
