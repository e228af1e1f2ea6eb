package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config holds the logger settings.
type Config struct {
	// Level is the minimum level that gets emitted. One of the level
	// constants above; anything else falls back to info.
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`

	// EnableTracing makes the *WithContext methods extract the active
	// span from the context and attach trace_id and span_id fields.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`
}
