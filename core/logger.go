package core

// Logger is any service that can report messages & errors.
// args may contain errors, extra data (map[string]interface{}) and the current profile.Profile.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
