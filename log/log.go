// Package log builds the zap logger of the service from command line flags.
//
// Production mode logs json at info level and captures stacktraces from error
// level, development mode logs to the console at debug level and captures
// stacktraces from warn level. Each default can be overridden by its own flag.
package log

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jnovack/flag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options contains all possible settings
type Options struct {
	// Development configures the logger to use a Zap development config
	Development bool
	// Encoder is one of 'json' or 'console', empty picks the mode default
	Encoder string
	// Level is one of 'debug', 'info', 'warn', 'error' or an integer > 0 for
	// increasingly verbose debug levels, empty picks the mode default
	Level string
	// StacktraceLevel is one of 'info', 'warn', 'error', empty picks the mode default
	StacktraceLevel string
}

// BindFlags registers the zap-* flags on fs
//
//	zap-devel: Development Mode defaults(encoder=console,logLevel=debug,stackTraceLevel=warn)
//	           Production Mode defaults(encoder=json,logLevel=info,stackTraceLevel=error)
//	zap-encoder: Zap log encoding (one of 'json' or 'console')
//	zap-log-level: Zap Level to configure the verbosity of logging
//	zap-stacktrace-level: Zap Level at and above which stacktraces are captured
func (o *Options) BindFlags(fs *flag.FlagSet) {
	fs.BoolVar(&o.Development, "zap-devel", false,
		"Development Mode defaults(encoder=console,logLevel=debug,stackTraceLevel=warn). "+
			"Production Mode defaults(encoder=json,logLevel=info,stackTraceLevel=error)")

	fs.StringVar(&o.Encoder, "zap-encoder", "", "Zap log encoding (one of 'json' or 'console')")

	fs.StringVar(&o.Level, "zap-log-level", "",
		"Zap Level to configure the verbosity of logging. Can be one of 'debug', 'info', 'warn', 'error', "+
			"or any integer value > 0 which corresponds to custom debug levels of increasing verbosity")

	fs.StringVar(&o.StacktraceLevel, "zap-stacktrace-level", "",
		"Zap Level at and above which stacktraces are captured (one of 'info', 'warn', 'error').")
}

var stackLevelStrings = map[string]zapcore.Level{
	"info":  zap.InfoLevel,
	"warn":  zap.WarnLevel,
	"error": zap.ErrorLevel,
}

// Config turns the options into a zap config, the stacktrace level is returned
// separately as zap only takes it as a build option
func (o *Options) Config() (zap.Config, zapcore.Level, error) {
	encoder, level, stack := "json", zap.InfoLevel, zap.ErrorLevel
	if o.Development {
		encoder, level, stack = "console", zap.DebugLevel, zap.WarnLevel
	}

	if o.Encoder != "" {
		switch strings.ToLower(o.Encoder) {
		case "json", "console":
			encoder = strings.ToLower(o.Encoder)
		default:
			return zap.Config{}, 0, fmt.Errorf("invalid encoder value %q", o.Encoder)
		}
	}

	if o.Level != "" {
		parsed, err := parseLevel(o.Level)
		if err != nil {
			return zap.Config{}, 0, err
		}
		level = parsed
	}

	if o.StacktraceLevel != "" {
		parsed, ok := stackLevelStrings[strings.ToLower(o.StacktraceLevel)]
		if !ok {
			return zap.Config{}, 0, fmt.Errorf("invalid stacktrace level %q", o.StacktraceLevel)
		}
		stack = parsed
	}

	cfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: o.Development,
		Encoding:    encoder,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	// sampling breaks custom debug levels below -2
	if !o.Development && level >= zapcore.Level(-2) {
		cfg.Sampling = &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		}
	}

	return cfg, stack, nil
}

// New builds the logger described by the options
func New(o Options) (*zap.Logger, zap.Config, error) {
	cfg, stack, err := o.Config()
	if err != nil {
		return nil, zap.Config{}, err
	}

	logger, err := cfg.Build(zap.WithCaller(true), zap.AddStacktrace(stack))
	if err != nil {
		return nil, zap.Config{}, err
	}

	return logger, cfg, nil
}

func parseLevel(s string) (zapcore.Level, error) {
	if level, err := zapcore.ParseLevel(s); err == nil {
		return level, nil
	}

	verbosity, err := strconv.Atoi(s)
	if err != nil || verbosity <= 0 || verbosity > 127 {
		return 0, fmt.Errorf("invalid log level %q", s)
	}

	return zapcore.Level(int8(-verbosity)), nil
}
