package log

import "log/slog"

// Flow creates an attribute for a flow name
func Flow[T ~string](name T) slog.Attr {
	return slog.String("flow", string(name))
}

// Session creates an attribute for an interpreter session ID
func Session[T ~string](id T) slog.Attr {
	return slog.String("session_id", string(id))
}

// Record creates an attribute for a configuration record name
func Record[T ~string](name T) slog.Attr {
	return slog.String("record", string(name))
}

// Output creates an attribute for a declared output name
func Output[T ~string](name T) slog.Attr {
	return slog.String("output", string(name))
}

// Error creates an attribute from an error, handling nil gracefully
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// ErrorString creates an error attribute from a string message
func ErrorString(msg string) slog.Attr {
	return slog.String("error", msg)
}
