package logger

// Backend is a logging sink. Messages carry optional key/value pairs.
type Backend interface {
	Log(message string, keyvals ...any)
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

// Logger fans log calls out to every configured backend.
type Logger struct {
	backends []Backend
}

var global *Logger

// Init sets up the global logger. Call once at process start, before any
// logging; calls made while the logger is unset are dropped.
func Init(backends ...Backend) {
	global = &Logger{backends: backends}
}

// Log writes a message at the default level.
func Log(message string, keyvals ...any) {
	if global == nil {
		return
	}
	for _, b := range global.backends {
		b.Log(message, keyvals...)
	}
}

// Debug writes a message at DEBUG level.
func Debug(message string, keyvals ...any) {
	if global == nil {
		return
	}
	for _, b := range global.backends {
		b.Debug(message, keyvals...)
	}
}

// Info writes a message at INFO level.
func Info(message string, keyvals ...any) {
	if global == nil {
		return
	}
	for _, b := range global.backends {
		b.Info(message, keyvals...)
	}
}

// Warn writes a message at WARN level.
func Warn(message string, keyvals ...any) {
	if global == nil {
		return
	}
	for _, b := range global.backends {
		b.Warn(message, keyvals...)
	}
}

// Error writes a message at ERROR level.
func Error(message string, keyvals ...any) {
	if global == nil {
		return
	}
	for _, b := range global.backends {
		b.Error(message, keyvals...)
	}
}

// Fatal writes a message at FATAL level and terminates the program.
func Fatal(message string, keyvals ...any) {
	if global == nil {
		return
	}
	for _, b := range global.backends {
		b.Fatal(message, keyvals...)
	}
}
