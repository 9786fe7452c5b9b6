package logger

import (
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// DefaultMetadataURL is the EC2 instance metadata endpoint.
const DefaultMetadataURL = "http://169.254.169.254/latest/meta-data/"

// metadataFields maps bound context keys to metadata paths. The first
// entry decides whether the endpoint is reachable.
var metadataFields = []struct {
	key  string
	path string
}{
	{"ec2_instance_id", "instance-id"},
	{"ec2_instance_type", "instance-type"},
	{"ec2_region", "placement/availability-zone"},
	{"ec2_ipv4", "local-ipv4"},
}

// fetchMetadata reads the instance metadata fields. It fails when the
// instance id cannot be read; other missing values are left out.
func fetchMetadata(baseURL string, timeout time.Duration) (map[string]any, error) {
	if baseURL == "" {
		baseURL = DefaultMetadataURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	out := make(map[string]any, len(metadataFields))
	for i, f := range metadataFields {
		value, err := fetchMetadataValue(baseURL+f.path, timeout)
		if err != nil {
			if i == 0 {
				return nil, err
			}
			continue
		}
		out[f.key] = value
	}
	return out, nil
}

func fetchMetadataValue(url string, timeout time.Duration) (string, error) {
	status, body, err := fasthttp.GetTimeout(nil, url, timeout)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	if status != fasthttp.StatusOK {
		return "", fmt.Errorf("get %s: status %d", url, status)
	}
	return strings.TrimSpace(string(body)), nil
}
