package handler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/philipp01105/wryte/core"
)

// SyslogFacilities lists the facility names SyslogConfig accepts.
var SyslogFacilities = []string{
	"LOG_KERN", "LOG_USER", "LOG_MAIL", "LOG_DAEMON", "LOG_AUTH",
	"LOG_SYSLOG", "LOG_LPR", "LOG_NEWS", "LOG_UUCP", "LOG_CRON",
	"LOG_AUTHPRIV", "LOG_FTP",
	"LOG_LOCAL0", "LOG_LOCAL1", "LOG_LOCAL2", "LOG_LOCAL3",
	"LOG_LOCAL4", "LOG_LOCAL5", "LOG_LOCAL6", "LOG_LOCAL7",
}

// SyslogNetworks lists the socket types SyslogConfig accepts.
var SyslogNetworks = []string{"udp", "tcp", "unix"}

// facilityName normalizes name to its LOG_ form ("local0" becomes
// "LOG_LOCAL0") and checks it against SyslogFacilities.
func facilityName(name string) (string, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(name, "LOG_") {
		name = "LOG_" + name
	}
	if !slices.Contains(SyslogFacilities, name) {
		return "", core.NewConfigurationError("syslog facility",
			fmt.Errorf("%w: unknown facility %q", core.ErrInvalidSettings, name))
	}
	return name, nil
}
