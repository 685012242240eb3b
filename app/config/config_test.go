package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("YT_RECENT_TEST_BIN", "/usr/local/bin/yt-dlp")
	r, err := Load("testdata/config.yml")
	require.NoError(t, err)

	assert.Equal(t, []string{"@veritasium", "https://www.youtube.com/c/kurzgesagt", "UCYO_jab_esuFRV4b17AJtAw"}, r.Channels)
	assert.Equal(t, 20, r.Limit)
	assert.Equal(t, 5, r.Concurrency, "default")

	assert.Equal(t, "/usr/local/bin/yt-dlp", r.YtDlp.Binary, "expanded from env")
	assert.Equal(t, 90*time.Second, r.YtDlp.Timeout)
	assert.Equal(t, 10*1024*1024, r.YtDlp.MaxOutput)
	assert.Equal(t, []string{"--no-warnings", "--ignore-config"}, r.YtDlp.ExtraArgs)
	assert.Equal(t, "pip install -U yt-dlp", r.YtDlp.UpdateCmd)
	assert.Equal(t, 12*time.Hour, r.YtDlp.UpdateInterval)

	assert.Equal(t, 15*time.Second, r.Scraper.Timeout)
	assert.Equal(t, "test-agent/1.0", r.Scraper.UserAgent)
	assert.Equal(t, 5, r.Scraper.MaxRedirects)

	assert.Equal(t, 9090, r.Server.Port)
	assert.Equal(t, 5*time.Minute, r.Server.CacheTTL)
	assert.InDelta(t, 10.0, r.Server.RateLimit, 0.001)
	assert.Equal(t, "var/journal.db", r.DB)
}

func TestLoadEnvNotSet(t *testing.T) {
	t.Setenv("YT_RECENT_TEST_BIN", "")
	r, err := Load("testdata/config.yml")
	require.NoError(t, err)
	assert.Equal(t, "yt-dlp", r.YtDlp.Binary, "empty after expansion, default applied")
}

func TestDefault(t *testing.T) {
	r := Default()
	assert.Empty(t, r.Channels)
	assert.Equal(t, 50, r.Limit)
	assert.Equal(t, 5, r.Concurrency)
	assert.Equal(t, "yt-dlp", r.YtDlp.Binary)
	assert.Equal(t, 60*time.Second, r.YtDlp.Timeout)
	assert.Equal(t, 24*time.Hour, r.YtDlp.UpdateInterval)
	assert.Equal(t, 8080, r.Server.Port)
	assert.Equal(t, time.Duration(0), r.Server.CacheTTL, "no caching by default")
	assert.Empty(t, r.DB)
}

func TestLoadRateLimitDisabled(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(fname, []byte("limit: 0\nserver:\n  rate_limit: -1\n"), 0o600))
	r, err := Load(fname)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, r.Server.RateLimit, 0.001, "negative kept, limiter off")
	assert.Equal(t, 50, r.Limit, "zero limit means default")
}

func TestLoadConfigNotFoundFile(t *testing.T) {
	r, err := Load("/tmp/29e28b3c-e1a4-4269-a10b-3e9a89a08d45.txt")

	assert.Nil(t, r)
	assert.EqualError(t, err, "open /tmp/29e28b3c-e1a4-4269-a10b-3e9a89a08d45.txt: no such file or directory")
}

func TestLoadConfigInvalidYaml(t *testing.T) {
	r, err := Load("testdata/file.txt")

	assert.Nil(t, r)
	assert.EqualError(t, err, "can't parse testdata/file.txt: yaml: unmarshal errors:\n  line 1: cannot unmarshal !!str `Not Yaml` into config.Conf")
}
