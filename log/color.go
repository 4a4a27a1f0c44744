package log

// reset ends a colored terminal line.
const reset = "\033[0m"

var levelColors = map[LogLevel]string{
	Debug: "\033[36m",
	Info:  "\033[32m",
	Warn:  "\033[33m",
	Error: "\033[31m",
	Fatal: "\033[1;31m",
}

// Color returns the ANSI sequence used for terminal lines of level l.
func Color(l LogLevel) string {
	if color, ok := levelColors[l]; ok {
		return color
	}
	return reset
}
