package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Playlist(t *testing.T) {
	dir := t.TempDir()
	bin := fakeYtDlp(t, dir, `echo "$@" > `+filepath.Join(dir, "args")+`
echo '{"id":"UC1","title":"chan","entries":[{"id":"v1","title":"t1"},{"id":"v2","title":"t2"}]}'`)

	e := &Extractor{Binary: bin, Timeout: 5 * time.Second}
	res, err := e.Playlist(context.Background(), "https://www.youtube.com/@channel1/videos", 2)
	require.NoError(t, err)
	assert.Equal(t, "UC1", res.ID)
	assert.Equal(t, []Entry{{ID: "v1", Title: "t1"}, {ID: "v2", Title: "t2"}}, res.Entries)

	args, err := os.ReadFile(filepath.Join(dir, "args"))
	require.NoError(t, err)
	assert.Equal(t, "-J --flat-playlist --playlist-end 2 https://www.youtube.com/@channel1/videos\n", string(args))
}

func TestExtractor_PlaylistNoEntries(t *testing.T) {
	dir := t.TempDir()
	bin := fakeYtDlp(t, dir, `echo '{"id":"UC1","title":"chan"}'`)
	res, err := (&Extractor{Binary: bin}).Playlist(context.Background(), "https://www.youtube.com/@channel1/videos", 5)
	require.NoError(t, err)
	assert.Nil(t, res.Entries)
}

func TestExtractor_Video(t *testing.T) {
	dir := t.TempDir()
	bin := fakeYtDlp(t, dir, `echo "$@" > `+filepath.Join(dir, "args")+`
echo '{"id":"video1","title":"Video 1","duration":300.0,"view_count":"1000","upload_date":"20230101","formats":[]}'`)

	e := &Extractor{Binary: bin, ExtraArgs: []string{"--no-warnings"}}
	res, err := e.Video(context.Background(), "video1")
	require.NoError(t, err)
	assert.Equal(t, Video{ID: "video1", Title: "Video 1", Duration: Number{Value: 300, Valid: true},
		ViewCount: Number{Value: 1000, Valid: true}, UploadDate: "20230101"}, res)

	args, err := os.ReadFile(filepath.Join(dir, "args"))
	require.NoError(t, err)
	assert.Equal(t, "--no-warnings -J --skip-download https://www.youtube.com/watch?v=video1\n", string(args))

	_, err = e.Video(context.Background(), "")
	assert.EqualError(t, err, "empty video id")
}

func TestExtractor_MissingBinary(t *testing.T) {
	for _, bin := range []string{"no-such-yt-dlp-binary-3f9a", filepath.Join(t.TempDir(), "nothing-here")} {
		_, err := (&Extractor{Binary: bin}).Playlist(context.Background(), "https://www.youtube.com/@channel1/videos", 1)
		require.Error(t, err)
		var ee *Error
		require.True(t, errors.As(err, &ee), bin)
		assert.Equal(t, KindMissingBinary, ee.Kind, bin)
	}
}

func TestExtractor_Failed(t *testing.T) {
	dir := t.TempDir()
	bin := fakeYtDlp(t, dir, `echo partial output
echo "ERROR: [youtube] video1: Video unavailable" >&2
exit 1`)

	_, err := (&Extractor{Binary: bin}).Video(context.Background(), "video1")
	require.Error(t, err)
	var ee *Error
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, KindFailed, ee.Kind)
	assert.Equal(t, "partial output\n", ee.Stdout)
	assert.Equal(t, "ERROR: [youtube] video1: Video unavailable\n", ee.Stderr)
	assert.True(t, strings.HasPrefix(err.Error(), "yt-dlp failed: exit status 1"), err.Error())
	assert.Contains(t, err.Error(), "stderr: ERROR: [youtube] video1: Video unavailable")
}

func TestExtractor_TruncatedCapture(t *testing.T) {
	dir := t.TempDir()
	bin := fakeYtDlp(t, dir, `head -c 2000 /dev/zero | tr '\0' x >&2
exit 2`)

	_, err := (&Extractor{Binary: bin}).Video(context.Background(), "video1")
	var ee *Error
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, KindFailed, ee.Kind)
	assert.Equal(t, strings.Repeat("x", 500), ee.Stderr)
}

func TestExtractor_MalformedOutput(t *testing.T) {
	dir := t.TempDir()
	bin := fakeYtDlp(t, dir, `echo 'this is not json'
echo "WARNING: something" >&2`)

	_, err := (&Extractor{Binary: bin}).Playlist(context.Background(), "https://www.youtube.com/@channel1/videos", 1)
	var ee *Error
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, KindMalformedOutput, ee.Kind)
	assert.True(t, strings.HasPrefix(err.Error(), "JSON parse failed: "), err.Error())
	assert.Contains(t, err.Error(), "stdout: this is not json")
	assert.Contains(t, err.Error(), "stderr: WARNING: something")
}

func TestExtractor_StructurallyInvalid(t *testing.T) {
	dir := t.TempDir()
	bin := fakeYtDlp(t, dir, `echo '{"id": 12345, "title": "numeric id"}'`)
	_, err := (&Extractor{Binary: bin}).Video(context.Background(), "video1")
	var ee *Error
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, KindMalformedOutput, ee.Kind)
}

func TestExtractor_Timeout(t *testing.T) {
	dir := t.TempDir()
	bin := fakeYtDlp(t, dir, `exec sleep 5`)

	st := time.Now()
	_, err := (&Extractor{Binary: bin, Timeout: 100 * time.Millisecond}).Video(context.Background(), "video1")
	var ee *Error
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, KindTimeout, ee.Kind)
	assert.Less(t, time.Since(st), 3*time.Second)
}

func TestExtractor_OutputLimit(t *testing.T) {
	dir := t.TempDir()
	bin := fakeYtDlp(t, dir, `echo '{"id":"video1","title":"long enough to overflow"}'`)
	_, err := (&Extractor{Binary: bin, MaxOutput: 10}).Video(context.Background(), "video1")
	var ee *Error
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, KindFailed, ee.Kind)
	assert.Contains(t, err.Error(), "stdout exceeds 10 bytes")
	assert.Equal(t, `{"id":"vid`, ee.Stdout)
}

func TestExtractor_CustomRunner(t *testing.T) {
	var gotName string
	var gotArgs []string
	runner := runnerFunc(func(_ context.Context, name string, args []string, stdout, _ io.Writer) error {
		gotName, gotArgs = name, args
		_, err := stdout.Write([]byte(`{"entries":[]}`))
		return err
	})
	e := &Extractor{Runner: runner}
	res, err := e.Playlist(context.Background(), "https://www.youtube.com/@channel1/videos", 7)
	require.NoError(t, err)
	assert.NotNil(t, res.Entries)
	assert.Empty(t, res.Entries)
	assert.Equal(t, "yt-dlp", gotName)
	assert.Equal(t, []string{"-J", "--flat-playlist", "--playlist-end", "7", "https://www.youtube.com/@channel1/videos"}, gotArgs)
}

func TestNew(t *testing.T) {
	e := New()
	assert.Equal(t, "yt-dlp", e.Binary)
	assert.Equal(t, 60*time.Second, e.Timeout)
	assert.Equal(t, 10*1024*1024, e.MaxOutput)
}

func TestNumber_UnmarshalJSON(t *testing.T) {
	tbl := []struct {
		inp   string
		value float64
		valid bool
	}{
		{`{"n": 123}`, 123, true},
		{`{"n": 214.5}`, 214.5, true},
		{`{"n": "2000"}`, 2000, true},
		{`{"n": " 42 "}`, 42, true},
		{`{"n": 0}`, 0, true},
		{`{"n": null}`, 0, false},
		{`{"n": "many"}`, 0, false},
		{`{"n": {"a": 1}}`, 0, false},
		{`{"n": [1, 2]}`, 0, false},
		{`{}`, 0, false},
	}

	for _, tt := range tbl {
		t.Run(tt.inp, func(t *testing.T) {
			var v struct {
				N Number `json:"n"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.inp), &v))
			assert.Equal(t, tt.valid, v.N.Valid)
			assert.Equal(t, tt.value, v.N.Value)
		})
	}

	assert.True(t, Number{Value: 1, Valid: true}.Truthy())
	assert.False(t, Number{Value: 0, Valid: true}.Truthy())
	assert.False(t, Number{}.Truthy())
}

func TestUpdater_Update(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "updated")
	u := Updater{Command: "echo updated > " + marker}
	require.NoError(t, u.Update(context.Background()))
	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "updated\n", string(data))

	counter := filepath.Join(dir, "attempts")
	u = Updater{Command: "echo x >> " + counter + "; exit 1", Repeats: 2, Delay: time.Millisecond}
	err = u.Update(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute yt-dlp update command")
	data, err = os.ReadFile(counter)
	require.NoError(t, err)
	attempts := strings.Count(string(data), "x")
	assert.True(t, attempts >= 1 && attempts <= 2, "attempts %d", attempts)
}

func TestUpdater_Run(t *testing.T) {
	dir := t.TempDir()
	counter := filepath.Join(dir, "runs")
	u := Updater{Command: "echo x >> " + counter, Interval: 20 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	u.Run(ctx)
	data, err := os.ReadFile(counter)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, strings.Count(string(data), "x"), 2)

	// disabled updater returns right away
	st := time.Now()
	(&Updater{}).Run(context.Background())
	assert.Less(t, time.Since(st), time.Second)
}

type runnerFunc func(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error

func (f runnerFunc) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	return f(ctx, name, args, stdout, stderr)
}

// fakeYtDlp writes an executable shell script standing in for yt-dlp
func fakeYtDlp(t *testing.T, dir, script string) string {
	t.Helper()
	fname := filepath.Join(dir, "yt-dlp")
	require.NoError(t, os.WriteFile(fname, []byte("#!/bin/sh\n"+script+"\n"), 0o700)) //nolint:gosec // test fixture
	return fname
}
