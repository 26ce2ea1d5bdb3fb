// FILE: lixenwraith/kvconf/decode_test.go
package kvconf

import (
	"net"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScanWithComplexTypes tests scanning string options into typed fields
func TestScanWithComplexTypes(t *testing.T) {
	type NetworkConfig struct {
		IP      net.IP        `kvconf:"ip"`
		URL     *url.URL      `kvconf:"endpoint"`
		Timeout time.Duration `kvconf:"timeout"`
		Retry   struct {
			Count    int           `kvconf:"count"`
			Interval time.Duration `kvconf:"interval"`
		} `kvconf:"retry"`
	}

	type AppConfig struct {
		Network  NetworkConfig `kvconf:"network"`
		Tags     []string      `kvconf:"tags"`
		Ports    []int         `kvconf:"ports"`
		MaxLen   int64         `kvconf:"max_length"`
		Debug    bool          `kvconf:"debug"`
		Name     string        `kvconf:"name"`
		Untagged string
	}

	s := New()
	require.NoError(t, s.LoadList(ModeAdd, []string{
		"network.ip = 192.168.1.100",
		"network.endpoint = https://api.example.com:8443/v1",
		"network.timeout = 2m30s",
		"network.retry.count = 5",
		"network.retry.interval = 10s",
		"tags = prod,staging,test",
		"ports = 80,443,0x1F90",
		"max_length = 0x400",
		"debug = true",
		"name =",
	}))

	var result AppConfig
	require.NoError(t, s.Scan("", &result))

	assert.Equal(t, "192.168.1.100", result.Network.IP.String())
	assert.Equal(t, "https://api.example.com:8443/v1", result.Network.URL.String())
	assert.Equal(t, 150*time.Second, result.Network.Timeout)
	assert.Equal(t, 5, result.Network.Retry.Count)
	assert.Equal(t, 10*time.Second, result.Network.Retry.Interval)
	assert.Equal(t, []string{"prod", "staging", "test"}, result.Tags)
	assert.Equal(t, []int{80, 443, 8080}, result.Ports)
	assert.Equal(t, int64(1024), result.MaxLen)
	assert.True(t, result.Debug)
	assert.Equal(t, "", result.Name)
}

// TestScanSection tests scanning a sub-section by base path
func TestScanSection(t *testing.T) {
	type Server struct {
		Host string `kvconf:"host"`
		Port int    `kvconf:"port"`
	}

	s := New()
	require.NoError(t, s.LoadList(ModeAdd, []string{"server.host=example.com", "server.port=9000", "other=x"}))

	var srv Server
	require.NoError(t, s.Scan("server", &srv))
	assert.Equal(t, Server{Host: "example.com", Port: 9000}, srv)

	var missing Server
	require.NoError(t, s.Scan("absent", &missing))
	assert.Equal(t, Server{}, missing)

	err := s.Scan("other", &srv)
	assert.ErrorIs(t, err, ErrInvalidParam)
}

// TestScanErrors tests rejected targets and malformed values
func TestScanErrors(t *testing.T) {
	s := New()
	require.NoError(t, s.LoadList(ModeAdd, []string{"port=80 80", "small=300"}))

	var notPtr struct{}
	assert.ErrorIs(t, s.Scan("", notPtr), ErrInvalidParam)
	assert.ErrorIs(t, s.Scan("", nil), ErrInvalidParam)

	var badPort struct {
		Port int `kvconf:"port"`
	}
	assert.Error(t, s.Scan("", &badPort))

	var overflow struct {
		Small int8 `kvconf:"small"`
	}
	assert.Error(t, s.Scan("", &overflow))
}

// TestScanIntoMap tests scanning into a plain map
func TestScanIntoMap(t *testing.T) {
	s := New()
	require.NoError(t, s.LoadList(ModeAdd, []string{"a=1", "b=two"}))

	out := map[string]string{}
	require.NoError(t, s.Scan("", &out))
	assert.Equal(t, map[string]string{"a": "1", "b": "two"}, out)
}
