package config

const (
	// EnvPort overrides server.port when set
	EnvPort = "PORT"
)

const (
	fmtErrEmptyConfig       = "config %s cannot be empty"
	fmtErrEmptyConfigOption = "config field '%s' cannot be empty"
	fmtErrInvalidOption     = "config field '%s' has invalid value %q"
)

const (
	constLogFormatText = "text"
	constLogFormatJSON = "json"
)
