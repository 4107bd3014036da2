package logger

import (
	"os"
	"time"

	"github.com/leandrodaf/midicc/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements contracts.Logger on top of Uber's zap.
type ZapLogger struct {
	logger  *zap.Logger
	atom    zap.AtomicLevel
	encoder zapcore.Encoder
	level   contracts.LogLevel
}

// NewZapLogger creates a JSON logger writing to stderr.
func NewZapLogger() contracts.Logger {
	return newZapLogger(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.Lock(os.Stderr))
}

// NewStandardLogger creates a human readable console logger writing to stderr.
func NewStandardLogger() contracts.Logger {
	return newZapLogger(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(os.Stderr))
}

// NewZapLoggerWithCore wraps an existing core. Level filtering still goes
// through SetLevel, on top of whatever the core enables.
func NewZapLoggerWithCore(core zapcore.Core) *ZapLogger {
	atom := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return &ZapLogger{
		logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)),
		atom:   atom,
		level:  contracts.InfoLevel,
	}
}

func newZapLogger(enc zapcore.Encoder, out zapcore.WriteSyncer) *ZapLogger {
	atom := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return &ZapLogger{
		logger:  zap.New(zapcore.NewCore(enc, out, atom), zap.AddCaller(), zap.AddCallerSkip(2)),
		atom:    atom,
		encoder: enc,
		level:   contracts.InfoLevel,
	}
}

// Info logs a message at the INFO level
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.log(zapcore.InfoLevel, msg, fields...)
}

// Error logs a message at the ERROR level
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.log(zapcore.ErrorLevel, msg, fields...)
}

// Debug logs a message at the DEBUG level
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.log(zapcore.DebugLevel, msg, fields...)
}

// Warn logs a message at the WARN level
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.log(zapcore.WarnLevel, msg, fields...)
}

// Fatal logs a message at the FATAL level and terminates the application
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.log(zapcore.FatalLevel, msg, fields...)
}

// Field returns a field builder.
func (z *ZapLogger) Field() contracts.Field {
	return &zapField{}
}

// SetLevel sets the minimum level that gets written.
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level = level
	z.atom.SetLevel(toZapLevel(level))
}

// SetDestination redirects output to the console or to a file. Failing to
// open the file keeps the current destination and logs the error.
func (z *ZapLogger) SetDestination(dest contracts.LogDestination, filePath ...string) {
	enc := z.encoder
	if enc == nil {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	var out zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
	if dest == contracts.FileLog {
		if len(filePath) == 0 || filePath[0] == "" {
			z.Warn("file log destination requested without a path")
			return
		}
		sink, _, err := zap.Open(filePath[0])
		if err != nil {
			z.Error("failed to open log file", z.Field().String("path", filePath[0]), z.Field().Error("error", err))
			return
		}
		out = sink
	}

	z.encoder = enc
	z.logger = zap.New(zapcore.NewCore(enc, out, z.atom), zap.AddCaller(), zap.AddCallerSkip(2))
}

// Sync flushes buffered entries.
func (z *ZapLogger) Sync() error {
	return z.logger.Sync()
}

func (z *ZapLogger) log(level zapcore.Level, msg string, fields ...contracts.Field) {
	if !z.atom.Enabled(level) {
		return
	}
	if ce := z.logger.Check(level, msg); ce != nil {
		ce.Write(toZapFields(fields)...)
	}
}

// toZapLevel maps contract levels, whose numbering differs from zap's.
func toZapLevel(level contracts.LogLevel) zapcore.Level {
	switch level {
	case contracts.DebugLevel:
		return zapcore.DebugLevel
	case contracts.WarnLevel:
		return zapcore.WarnLevel
	case contracts.ErrorLevel:
		return zapcore.ErrorLevel
	case contracts.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapFields(fields []contracts.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if f, ok := field.(*zapField); ok && f.key != "" {
			out = append(out, f.field)
		}
	}
	return out
}

// zapField implements contracts.Field
type zapField struct {
	key   string
	field zap.Field
}

func (f *zapField) Bool(key string, val bool) contracts.Field {
	return &zapField{key, zap.Bool(key, val)}
}

func (f *zapField) Int(key string, val int) contracts.Field {
	return &zapField{key, zap.Int(key, val)}
}

func (f *zapField) Int32(key string, val int32) contracts.Field {
	return &zapField{key, zap.Int32(key, val)}
}

func (f *zapField) Float64(key string, val float64) contracts.Field {
	return &zapField{key, zap.Float64(key, val)}
}

func (f *zapField) String(key string, val string) contracts.Field {
	return &zapField{key, zap.String(key, val)}
}

func (f *zapField) Strings(key string, val []string) contracts.Field {
	return &zapField{key, zap.Strings(key, val)}
}

func (f *zapField) Time(key string, val time.Time) contracts.Field {
	return &zapField{key, zap.Time(key, val)}
}

func (f *zapField) Int64(key string, val int64) contracts.Field {
	return &zapField{key, zap.Int64(key, val)}
}

func (f *zapField) Error(key string, val error) contracts.Field {
	return &zapField{key, zap.NamedError(key, val)}
}

func (f *zapField) Uint64(key string, val uint64) contracts.Field {
	return &zapField{key, zap.Uint64(key, val)}
}

func (f *zapField) Uint8(key string, val uint8) contracts.Field {
	return &zapField{key, zap.Uint8(key, val)}
}
