package settings

const defaultTextFormat = "blake3"
const defaultHTTPPort = 8080
const defaultHTTPDir = "."
const defaultSigndListen = "127.0.0.1:7777"
const defaultLogLevel = "info"
const defaultLogFormat = "text"

// Settings holds defaults for command flags. Unset fields fall back to the
// built-in defaults; flags given on the command line override both.
type Settings struct {
	textFormat  *string
	httpPort    *int
	httpDir     *string
	signdListen *string
	logLevel    *string
	logFormat   *string
}

func valueOrDefault[V any](v *V, defaultValue V) V {
	if v == nil {
		return defaultValue
	}
	return *v
}

func (s *Settings) TextFormat() string {
	return valueOrDefault(s.textFormat, defaultTextFormat)
}

func (s *Settings) HTTPPort() int {
	return valueOrDefault(s.httpPort, defaultHTTPPort)
}

func (s *Settings) HTTPDir() string {
	return valueOrDefault(s.httpDir, defaultHTTPDir)
}

func (s *Settings) SigndListen() string {
	return valueOrDefault(s.signdListen, defaultSigndListen)
}

func (s *Settings) LogLevel() string {
	return valueOrDefault(s.logLevel, defaultLogLevel)
}

func (s *Settings) LogFormat() string {
	return valueOrDefault(s.logFormat, defaultLogFormat)
}

// Load reads settings from the environment.
func Load() *Settings {
	return loadSettingsFromEnv()
}
