package config

import (
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/philipp01105/wryte/core"
	"github.com/philipp01105/wryte/formatter"
	"github.com/philipp01105/wryte/handler"
)

// EnvPrefix starts every variable read by Load.
const EnvPrefix = "WRYTE"

// ConfigFileVar names the variable that points at an optional config file.
const ConfigFileVar = "CONFIG_FILE"

// Defaults of the rotating file sink.
const (
	DefaultMaxBytes    = 13107200
	DefaultBackupCount = 7
)

type ConsoleSettings struct {
	Disabled bool   `mapstructure:"disabled"`
	JSONify  bool   `mapstructure:"jsonify"`
	Level    string `mapstructure:"level"`
	Simple   bool   `mapstructure:"simple"`
}

// SinkSettings are shared by every environment-configured sink.
type SinkSettings struct {
	Enabled   bool   `mapstructure:"enabled"`
	Name      string `mapstructure:"name"`
	Level     string `mapstructure:"level"`
	Formatter string `mapstructure:"formatter"`
}

type FileSettings struct {
	SinkSettings `mapstructure:",squash"`
	Path         string `mapstructure:"path"`
	Rotate       bool   `mapstructure:"rotate"`
	MaxBytes     int64  `mapstructure:"max_bytes"`
	BackupCount  int    `mapstructure:"backup_count"`
	Compress     bool   `mapstructure:"compress"`
}

type SyslogSettings struct {
	SinkSettings `mapstructure:",squash"`
	Host         string `mapstructure:"host"`
	SocketType   string `mapstructure:"socket_type"`
	Facility     string `mapstructure:"facility"`
}

type LogzioSettings struct {
	SinkSettings `mapstructure:",squash"`
	Token        string `mapstructure:"token"`
	URL          string `mapstructure:"url"`
}

type ElasticsearchSettings struct {
	SinkSettings `mapstructure:",squash"`
	Host         string `mapstructure:"host"`
	Index        string `mapstructure:"index"`
}

type HandlersSettings struct {
	File          FileSettings          `mapstructure:"file"`
	Syslog        SyslogSettings        `mapstructure:"syslog"`
	Logzio        LogzioSettings        `mapstructure:"logzio"`
	Elasticsearch ElasticsearchSettings `mapstructure:"elasticsearch"`
}

// Settings holds everything Load reads for one logger.
type Settings struct {
	Console    ConsoleSettings  `mapstructure:"console"`
	EC2Enabled bool             `mapstructure:"ec2_enabled"`
	Handlers   HandlersSettings `mapstructure:"handlers"`
}

// setting binds a viper key to its variable name and default.
type setting struct {
	key string
	env string
	def any
}

var settings = []setting{
	{"console.disabled", "CONSOLE_DISABLED", false},
	{"console.jsonify", "CONSOLE_JSONIFY", false},
	{"console.level", "CONSOLE_LEVEL", ""},
	{"console.simple", "SIMPLE_CONSOLE", false},
	{"ec2_enabled", "EC2_ENABLED", false},

	{"handlers.file.enabled", "HANDLERS_FILE_ENABLED", false},
	{"handlers.file.path", "HANDLERS_FILE_PATH", ""},
	{"handlers.file.name", "HANDLERS_FILE_NAME", "file"},
	{"handlers.file.level", "HANDLERS_FILE_LEVEL", "info"},
	{"handlers.file.formatter", "HANDLERS_FILE_FORMATTER", "json"},
	{"handlers.file.rotate", "HANDLERS_FILE_ROTATE", false},
	{"handlers.file.max_bytes", "HANDLERS_FILE_MAX_BYTES", DefaultMaxBytes},
	{"handlers.file.backup_count", "HANDLERS_FILE_BACKUP_COUNT", DefaultBackupCount},
	{"handlers.file.compress", "HANDLERS_FILE_COMPRESS", false},

	{"handlers.syslog.enabled", "HANDLERS_SYSLOG_ENABLED", false},
	{"handlers.syslog.name", "HANDLERS_SYSLOG_NAME", "syslog"},
	{"handlers.syslog.level", "HANDLERS_SYSLOG_LEVEL", "info"},
	{"handlers.syslog.formatter", "HANDLERS_SYSLOG_FORMATTER", "json"},
	{"handlers.syslog.host", "HANDLERS_SYSLOG_HOST", "localhost:514"},
	{"handlers.syslog.socket_type", "HANDLERS_SYSLOG_SOCKET_TYPE", "udp"},
	{"handlers.syslog.facility", "HANDLERS_SYSLOG_FACILITY", "LOG_USER"},

	{"handlers.logzio.enabled", "HANDLERS_LOGZIO_ENABLED", false},
	{"handlers.logzio.token", "HANDLERS_LOGZIO_TOKEN", ""},
	{"handlers.logzio.name", "HANDLERS_LOGZIO_NAME", "logzio"},
	{"handlers.logzio.level", "HANDLERS_LOGZIO_LEVEL", "info"},
	{"handlers.logzio.formatter", "HANDLERS_LOGZIO_FORMATTER", "json"},
	{"handlers.logzio.url", "HANDLERS_LOGZIO_URL", "https://listener.logz.io:8071"},

	{"handlers.elasticsearch.enabled", "HANDLERS_ELASTICSEARCH_ENABLED", false},
	{"handlers.elasticsearch.host", "HANDLERS_ELASTICSEARCH_HOST", ""},
	{"handlers.elasticsearch.name", "HANDLERS_ELASTICSEARCH_NAME", "elasticsearch"},
	{"handlers.elasticsearch.level", "HANDLERS_ELASTICSEARCH_LEVEL", "info"},
	{"handlers.elasticsearch.formatter", "HANDLERS_ELASTICSEARCH_FORMATTER", "json"},
	{"handlers.elasticsearch.index", "HANDLERS_ELASTICSEARCH_INDEX", "logs"},
}

var nameReplacer = strings.NewReplacer("-", "_", ".", "_", " ", "_")

// EnvName returns the logger-specific variable name for variable,
// e.g. EnvName("my-app", "CONSOLE_LEVEL") is WRYTE_MY_APP_CONSOLE_LEVEL.
func EnvName(loggerName, variable string) string {
	return EnvPrefix + "_" + nameReplacer.Replace(strings.ToUpper(loggerName)) + "_" + variable
}

// GlobalEnvName returns the variable name that applies to every logger.
func GlobalEnvName(variable string) string {
	return EnvPrefix + "_" + variable
}

// lookup returns the logger-specific value of variable, falling back to
// the global one. Empty values count as unset.
func lookup(loggerName, variable string) string {
	if v := os.Getenv(EnvName(loggerName, variable)); v != "" {
		return v
	}
	return os.Getenv(GlobalEnvName(variable))
}

// Load reads and validates the settings of the named logger.
func Load(loggerName string) (*Settings, error) {
	v := viper.New()

	for _, s := range settings {
		v.SetDefault(s.key, s.def)
		// The first variable that is set wins
		if err := v.BindEnv(s.key, EnvName(loggerName, s.env), GlobalEnvName(s.env)); err != nil {
			return nil, core.NewConfigurationError("load settings", err)
		}
	}

	if file := lookup(loggerName, ConfigFileVar); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, core.NewConfigurationError("load settings",
				fmt.Errorf("%w: read %s: %w", core.ErrInvalidSettings, file, err))
		}
	}

	var cfg Settings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, core.NewConfigurationError("load settings",
			fmt.Errorf("%w: %w", core.ErrInvalidSettings, err))
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, core.NewConfigurationError("load settings",
			fmt.Errorf("%w: %w", core.ErrInvalidSettings, err))
	}
	return &cfg, nil
}

// normalize lower-cases enumerations so validation is case-insensitive.
func (s *Settings) normalize() {
	s.Console.Level = strings.ToLower(strings.TrimSpace(s.Console.Level))
	for _, sink := range []*SinkSettings{
		&s.Handlers.File.SinkSettings,
		&s.Handlers.Syslog.SinkSettings,
		&s.Handlers.Logzio.SinkSettings,
		&s.Handlers.Elasticsearch.SinkSettings,
	} {
		sink.Level = strings.ToLower(strings.TrimSpace(sink.Level))
		sink.Formatter = strings.ToLower(strings.TrimSpace(sink.Formatter))
	}
	s.Handlers.Syslog.SocketType = strings.ToLower(s.Handlers.Syslog.SocketType)
	s.Handlers.Syslog.Facility = strings.ToUpper(s.Handlers.Syslog.Facility)
	if s.Handlers.Syslog.Facility != "" && !strings.HasPrefix(s.Handlers.Syslog.Facility, "LOG_") {
		s.Handlers.Syslog.Facility = "LOG_" + s.Handlers.Syslog.Facility
	}
}

// Validate checks the console settings and every enabled sink. Disabled
// sinks are not validated.
func (s *Settings) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Console, validation.By(func(value interface{}) error {
			cs, ok := value.(ConsoleSettings)
			if !ok {
				return validation.NewError("validation_invalid_type", "must be a ConsoleSettings")
			}
			return validation.ValidateStruct(&cs,
				validation.Field(&cs.Level, validation.By(validateLevel)),
			)
		})),
		validation.Field(&s.Handlers, validation.By(func(value interface{}) error {
			hs, ok := value.(HandlersSettings)
			if !ok {
				return validation.NewError("validation_invalid_type", "must be a HandlersSettings")
			}
			return validation.ValidateStruct(&hs,
				validation.Field(&hs.File, validation.By(validateFile)),
				validation.Field(&hs.Syslog, validation.By(validateSyslog)),
				validation.Field(&hs.Logzio, validation.By(validateLogzio)),
				validation.Field(&hs.Elasticsearch, validation.By(validateElasticsearch)),
			)
		})),
	)
}

func sinkRules(s *SinkSettings) []*validation.FieldRules {
	return []*validation.FieldRules{
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Level, validation.Required, validation.By(validateLevel)),
		validation.Field(&s.Formatter, validation.Required, validation.By(validateFormatter)),
	}
}

func validateFile(value interface{}) error {
	fs, ok := value.(FileSettings)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a FileSettings")
	}
	if !fs.Enabled {
		return nil
	}
	rules := append(sinkRules(&fs.SinkSettings),
		validation.Field(&fs.Path, validation.Required),
		validation.Field(&fs.MaxBytes, validation.When(fs.Rotate, validation.Required, validation.Min(int64(1)))),
		validation.Field(&fs.BackupCount, validation.Min(0)),
	)
	return validation.ValidateStruct(&fs, rules...)
}

func validateSyslog(value interface{}) error {
	ss, ok := value.(SyslogSettings)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a SyslogSettings")
	}
	if !ss.Enabled {
		return nil
	}
	rules := append(sinkRules(&ss.SinkSettings),
		validation.Field(&ss.Host, validation.When(ss.SocketType != "unix", validation.Required)),
		validation.Field(&ss.SocketType, validation.Required, validation.In(toAny(handler.SyslogNetworks)...)),
		validation.Field(&ss.Facility, validation.Required, validation.In(toAny(handler.SyslogFacilities)...)),
	)
	return validation.ValidateStruct(&ss, rules...)
}

func validateLogzio(value interface{}) error {
	ls, ok := value.(LogzioSettings)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a LogzioSettings")
	}
	if !ls.Enabled {
		return nil
	}
	rules := append(sinkRules(&ls.SinkSettings),
		validation.Field(&ls.Token, validation.Required),
		validation.Field(&ls.URL, validation.Required),
	)
	return validation.ValidateStruct(&ls, rules...)
}

func validateElasticsearch(value interface{}) error {
	es, ok := value.(ElasticsearchSettings)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be an ElasticsearchSettings")
	}
	if !es.Enabled {
		return nil
	}
	rules := append(sinkRules(&es.SinkSettings),
		validation.Field(&es.Host, validation.Required),
		validation.Field(&es.Index, validation.Required),
	)
	return validation.ValidateStruct(&es, rules...)
}

func validateLevel(value interface{}) error {
	level, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if level == "" || core.ValidLevel(level) {
		return nil
	}
	return validation.NewError("validation_invalid_level",
		"must be one of "+strings.Join(core.LevelNames, ", "))
}

func validateFormatter(value interface{}) error {
	kind, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if formatter.ValidKind(kind) {
		return nil
	}
	return validation.NewError("validation_invalid_formatter",
		"must be one of "+strings.Join(formatter.Kinds, ", "))
}

func toAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
