package config_test

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/philipp01105/wryte/config"
	"github.com/philipp01105/wryte/core"
)

// setenv sets a variable until the current test ends
func setenv(key, value string) {
	prev, had := os.LookupEnv(key)
	Expect(os.Setenv(key, value)).To(Succeed())
	DeferCleanup(func() {
		if had {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

var _ = Describe("Config", func() {
	Describe("EnvName", func() {
		It("upper-cases the logger name and replaces separators", func() {
			Expect(config.EnvName("my-app.web api", "CONSOLE_LEVEL")).
				To(Equal("WRYTE_MY_APP_WEB_API_CONSOLE_LEVEL"))
			Expect(config.GlobalEnvName("CONSOLE_LEVEL")).To(Equal("WRYTE_CONSOLE_LEVEL"))
		})
	})

	Describe("Load", func() {
		Context("without any variables", func() {
			It("returns the defaults", func() {
				cfg, err := config.Load("defaults-test")
				Expect(err).NotTo(HaveOccurred())

				Expect(cfg.Console.Disabled).To(BeFalse())
				Expect(cfg.Console.Level).To(BeEmpty())
				Expect(cfg.EC2Enabled).To(BeFalse())

				file := cfg.Handlers.File
				Expect(file.Enabled).To(BeFalse())
				Expect(file.Name).To(Equal("file"))
				Expect(file.Level).To(Equal("info"))
				Expect(file.Formatter).To(Equal("json"))
				Expect(file.MaxBytes).To(Equal(int64(config.DefaultMaxBytes)))
				Expect(file.BackupCount).To(Equal(config.DefaultBackupCount))

				Expect(cfg.Handlers.Syslog.Host).To(Equal("localhost:514"))
				Expect(cfg.Handlers.Syslog.SocketType).To(Equal("udp"))
				Expect(cfg.Handlers.Syslog.Facility).To(Equal("LOG_USER"))
				Expect(cfg.Handlers.Logzio.URL).To(Equal("https://listener.logz.io:8071"))
				Expect(cfg.Handlers.Elasticsearch.Index).To(Equal("logs"))
			})
		})

		Context("with environment variables", func() {
			It("reads global variables", func() {
				setenv("WRYTE_CONSOLE_LEVEL", "DEBUG")
				setenv("WRYTE_SIMPLE_CONSOLE", "true")
				setenv("WRYTE_EC2_ENABLED", "1")

				cfg, err := config.Load("svc")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Console.Level).To(Equal("debug"))
				Expect(cfg.Console.Simple).To(BeTrue())
				Expect(cfg.EC2Enabled).To(BeTrue())
			})

			It("prefers the logger-specific variable", func() {
				setenv("WRYTE_HANDLERS_LOGZIO_TOKEN", "global")
				setenv("WRYTE_MY_LOGGER_HANDLERS_LOGZIO_TOKEN", "mine")

				mine, err := config.Load("my-logger")
				Expect(err).NotTo(HaveOccurred())
				Expect(mine.Handlers.Logzio.Token).To(Equal("mine"))

				other, err := config.Load("other")
				Expect(err).NotTo(HaveOccurred())
				Expect(other.Handlers.Logzio.Token).To(Equal("global"))
			})

			It("treats an empty logger-specific variable as unset", func() {
				setenv("WRYTE_CONSOLE_JSONIFY", "true")
				setenv("WRYTE_SVC_CONSOLE_JSONIFY", "")

				cfg, err := config.Load("svc")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Console.JSONify).To(BeTrue())
			})

			It("parses numeric sink settings", func() {
				setenv("WRYTE_HANDLERS_FILE_ENABLED", "true")
				setenv("WRYTE_HANDLERS_FILE_PATH", "/tmp/app.log")
				setenv("WRYTE_HANDLERS_FILE_ROTATE", "true")
				setenv("WRYTE_HANDLERS_FILE_MAX_BYTES", "1024")
				setenv("WRYTE_HANDLERS_FILE_BACKUP_COUNT", "2")

				cfg, err := config.Load("svc")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Handlers.File.Rotate).To(BeTrue())
				Expect(cfg.Handlers.File.MaxBytes).To(Equal(int64(1024)))
				Expect(cfg.Handlers.File.BackupCount).To(Equal(2))
				Expect(cfg.Handlers.File.Compress).To(BeFalse())
			})

			It("enables compression of rotated files", func() {
				setenv("WRYTE_HANDLERS_FILE_ENABLED", "true")
				setenv("WRYTE_HANDLERS_FILE_PATH", "/tmp/app.log")
				setenv("WRYTE_HANDLERS_FILE_ROTATE", "true")
				setenv("WRYTE_HANDLERS_FILE_COMPRESS", "true")

				cfg, err := config.Load("svc")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Handlers.File.Compress).To(BeTrue())
			})
		})

		Context("with a config file", func() {
			var path string

			BeforeEach(func() {
				path = filepath.Join(GinkgoT().TempDir(), "wryte.yaml")
				content := `
console:
  level: warning
handlers:
  elasticsearch:
    enabled: true
    host: "localhost:9200"
    index: app
`
				Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
				setenv("WRYTE_CONFIG_FILE", path)
			})

			It("reads values from the file", func() {
				cfg, err := config.Load("svc")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Console.Level).To(Equal("warning"))
				Expect(cfg.Handlers.Elasticsearch.Enabled).To(BeTrue())
				Expect(cfg.Handlers.Elasticsearch.Host).To(Equal("localhost:9200"))
				Expect(cfg.Handlers.Elasticsearch.Index).To(Equal("app"))
				Expect(cfg.Handlers.Elasticsearch.Name).To(Equal("elasticsearch"))
			})

			It("lets variables override the file", func() {
				setenv("WRYTE_CONSOLE_LEVEL", "error")

				cfg, err := config.Load("svc")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Console.Level).To(Equal("error"))
			})

			It("fails on a missing file", func() {
				setenv("WRYTE_CONFIG_FILE", filepath.Join(GinkgoT().TempDir(), "missing.yaml"))

				_, err := config.Load("svc")
				Expect(errors.Is(err, core.ErrInvalidSettings)).To(BeTrue())
			})
		})

		Context("with invalid settings", func() {
			DescribeTable("fails with a ConfigurationError",
				func(env map[string]string) {
					for k, v := range env {
						setenv(k, v)
					}

					_, err := config.Load("svc")
					Expect(err).To(HaveOccurred())

					var cfgErr *core.ConfigurationError
					Expect(errors.As(err, &cfgErr)).To(BeTrue())
					Expect(errors.Is(err, core.ErrInvalidSettings)).To(BeTrue())
				},
				Entry("unknown console level", map[string]string{
					"WRYTE_CONSOLE_LEVEL": "verbose",
				}),
				Entry("file sink without path", map[string]string{
					"WRYTE_HANDLERS_FILE_ENABLED": "true",
				}),
				Entry("file sink with unknown formatter", map[string]string{
					"WRYTE_HANDLERS_FILE_ENABLED":   "true",
					"WRYTE_HANDLERS_FILE_PATH":      "/tmp/app.log",
					"WRYTE_HANDLERS_FILE_FORMATTER": "xml",
				}),
				Entry("syslog with unknown socket type", map[string]string{
					"WRYTE_HANDLERS_SYSLOG_ENABLED":     "true",
					"WRYTE_HANDLERS_SYSLOG_SOCKET_TYPE": "sctp",
				}),
				Entry("syslog with unknown facility", map[string]string{
					"WRYTE_HANDLERS_SYSLOG_ENABLED":  "true",
					"WRYTE_HANDLERS_SYSLOG_FACILITY": "LOG_NOPE",
				}),
				Entry("logzio without token", map[string]string{
					"WRYTE_HANDLERS_LOGZIO_ENABLED": "true",
				}),
				Entry("elasticsearch without host", map[string]string{
					"WRYTE_HANDLERS_ELASTICSEARCH_ENABLED": "true",
				}),
			)

			It("ignores invalid settings of disabled sinks", func() {
				setenv("WRYTE_HANDLERS_FILE_FORMATTER", "xml")
				setenv("WRYTE_HANDLERS_SYSLOG_LEVEL", "verbose")

				_, err := config.Load("svc")
				Expect(err).NotTo(HaveOccurred())
			})

			It("accepts syslog facilities without the LOG_ prefix", func() {
				setenv("WRYTE_HANDLERS_SYSLOG_ENABLED", "true")
				setenv("WRYTE_HANDLERS_SYSLOG_FACILITY", "local3")

				cfg, err := config.Load("svc")
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Handlers.Syslog.Facility).To(Equal("LOG_LOCAL3"))
			})
		})
	})
})
