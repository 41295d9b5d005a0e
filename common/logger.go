package common

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel 日志级别
type LogLevel string

// 日志级别
const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

// EnvProduction 生产环境
const EnvProduction = "production"

// RootLoggerName 根logger的名称,子logger的名称为counterd.<name>
const RootLoggerName = "counterd"

func (p LogLevel) zapLevel() (zapcore.Level, bool) {
	switch LogLevel(strings.ToLower(string(p))) {
	case Debug:
		return zapcore.DebugLevel, true
	case Info:
		return zapcore.InfoLevel, true
	case Warn:
		return zapcore.WarnLevel, true
	case Error:
		return zapcore.ErrorLevel, true
	}
	return zapcore.InfoLevel, false
}

// Logger 带名称和固定字段的logger,同一个根logger派生出的Logger共享日志级别
type Logger struct {
	level zap.AtomicLevel
	sugar *zap.SugaredLogger
}

// NewLogger 按照配置创建名为counterd的根logger.
// production环境使用ISO8601时间,默认info级别;其余环境默认debug级别
func NewLogger(config *LogConfig) *Logger {
	var encoderConfig zapcore.EncoderConfig
	var level zap.AtomicLevel
	if config.Env == EnvProduction {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	} else {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if zapl, ok := LogLevel(config.Level).zapLevel(); ok {
		level.SetLevel(zapl)
	}

	var writer zapcore.WriteSyncer
	if config.FileName != "" {
		writer = zapcore.AddSync(&lumberjack.Logger{
			Filename:   config.FileName,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			LocalTime:  true,
		})
	} else {
		writer = zapcore.Lock(os.Stderr)
	}

	var opts []zap.Option
	if !config.NoCaller {
		// 跳过Logger自身的方法和包级别的日志函数
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), writer, level)
	return &Logger{
		level: level,
		sugar: zap.New(core, opts...).Named(RootLoggerName).Sugar(),
	}
}

// Named 派生名为name的子logger,keysAndValues作为固定字段附加到每一条日志上
func (l *Logger) Named(name string, keysAndValues ...interface{}) *Logger {
	return &Logger{level: l.level, sugar: l.sugar.Named(name).With(keysAndValues...)}
}

// Debugf debug
func (l *Logger) Debugf(format string, params ...interface{}) {
	l.sugar.Debugf(format, params...)
}

// Infof info
func (l *Logger) Infof(format string, params ...interface{}) {
	l.sugar.Infof(format, params...)
}

// Warnf warn
func (l *Logger) Warnf(format string, params ...interface{}) {
	l.sugar.Warnf(format, params...)
}

// Errorf error
func (l *Logger) Errorf(format string, params ...interface{}) {
	l.sugar.Errorf(format, params...)
}

// Logf 按照level记录日志,无效的level按info记录
func (l *Logger) Logf(level LogLevel, format string, params ...interface{}) {
	zapl, _ := level.zapLevel()
	switch zapl {
	case zapcore.DebugLevel:
		l.sugar.Debugf(format, params...)
	case zapcore.WarnLevel:
		l.sugar.Warnf(format, params...)
	case zapcore.ErrorLevel:
		l.sugar.Errorf(format, params...)
	default:
		l.sugar.Infof(format, params...)
	}
}

// Enabled level级别的日志是否会被记录
func (l *Logger) Enabled(level LogLevel) bool {
	zapl, _ := level.zapLevel()
	return l.level.Enabled(zapl)
}

// SetLevel 设置日志级别,无效的级别会被忽略
func (l *Logger) SetLevel(level LogLevel) {
	if zapl, ok := level.zapLevel(); ok {
		l.level.SetLevel(zapl)
	}
}

// Sync flush日志
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

var (
	root       = NewLogger(&LogConfig{Level: string(Info)})
	loggerLock sync.Mutex
	loggerInit bool
)

// initLogger 使用配置替换根logger,只能初始化一次
func initLogger(config *LogConfig) error {
	if config == nil {
		return nil
	}
	loggerLock.Lock()
	defer loggerLock.Unlock()

	if loggerInit {
		root.Warnf("logger has been already inited")
		return nil
	}
	fmt.Fprintf(os.Stderr, "init logger,env:%s,level:%s,file:%s\n", config.Env, config.Level, config.FileName)
	root.Sync()
	root = NewLogger(config)
	loggerInit = true
	return nil
}

// NamedLogger 从根logger派生名为name的子logger,需要在日志配置解析之后调用
func NamedLogger(name string, keysAndValues ...interface{}) *Logger {
	return root.Named(name, keysAndValues...)
}

// SetLogLevel 设置全局日志级别,无效的级别会被忽略
func SetLogLevel(level LogLevel) {
	root.SetLevel(level)
}

// LogEnabled 全局logger是否记录level级别的日志
func LogEnabled(level LogLevel) bool {
	return root.Enabled(level)
}

// SyncLog flush日志
func SyncLog() {
	root.Sync()
}

// Debugf debug
func Debugf(format string, params ...interface{}) {
	root.sugar.Debugf(format, params...)
}

// Infof info
func Infof(format string, params ...interface{}) {
	root.sugar.Infof(format, params...)
}

// Warnf warn
func Warnf(format string, params ...interface{}) {
	root.sugar.Warnf(format, params...)
}

// Errorf error
func Errorf(format string, params ...interface{}) {
	root.sugar.Errorf(format, params...)
}
