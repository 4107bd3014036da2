package contracts

// SessionNames holds the names the session registers with the host.
type SessionNames struct {
	Client            string `yaml:"client,omitempty"`              // Client used for physical output.
	VirtualClient     string `yaml:"virtual_client,omitempty"`      // Client owning the virtual source.
	OutputPort        string `yaml:"output_port,omitempty"`         // Output port of the physical client.
	VirtualOutputPort string `yaml:"virtual_output_port,omitempty"` // Output port of the virtual client.
	VirtualSource     string `yaml:"virtual_source,omitempty"`      // Name other applications see for the virtual port.
}

// ClientOptions defines the configuration options for the MIDI client.
type ClientOptions struct {
	Logger       Logger        // Logger for logging events and errors.
	LogLevel     LogLevel      // Level of logging to use.
	LogFilePath  string        // File path for logging if file logging is enabled.
	Host         Host          // Host MIDI service; chosen from the running OS when nil.
	InitialIndex *int          // Target selected at construction; the virtual port when nil.
	Names        *SessionNames // Names registered with the host.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFilePath directs log output to the given file.
func WithLogFilePath(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithHost overrides the host MIDI service.
func WithHost(h Host) Option {
	return func(opts *ClientOptions) {
		opts.Host = h
	}
}

// WithInitialIndex sets the target selected when the client is created.
func WithInitialIndex(index int) Option {
	return func(opts *ClientOptions) {
		opts.InitialIndex = &index
	}
}

// WithSessionNames sets the names registered with the host.
// Empty fields keep their defaults.
func WithSessionNames(names SessionNames) Option {
	return func(opts *ClientOptions) {
		opts.Names = &names
	}
}
