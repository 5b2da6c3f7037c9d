package config_loader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwquality"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConf(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// replaceConf swaps the file in one step so a watcher never reads it half
// written.
func replaceConf(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o644))
	require.NoError(t, os.Rename(tmp, path))
}

func TestLoadConf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pwquality.conf")
	writeConf(t, path, `# Configuration for password quality
difok = 5
minlen = 12
dcredit = -1
ucredit=-1
minclass = 3
maxrepeat = 3
gecoscheck
dictcheck = 0
badwords = acme  corp
dictpath = /usr/share/dict/words
`)

	s, err := Read(context.Background(), path)
	require.NoError(t, err)

	p := s.Snapshot()
	assert.Equal(t, 5, p.MinDiff)
	assert.Equal(t, 12, p.MinLength)
	assert.Equal(t, -1, p.DigitCredit)
	assert.Equal(t, -1, p.UpperCredit)
	assert.Equal(t, 3, p.MinClasses)
	assert.Equal(t, 3, p.MaxRepeat)
	assert.True(t, p.GecosCheck)
	assert.False(t, p.DictCheck)
	assert.True(t, p.UserCheck)
	assert.Equal(t, []string{"acme", "corp"}, p.BadWords)
	assert.Equal(t, "/usr/share/dict/words", p.DictPath)
}

func TestLoadClampsMinLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pwquality.conf")
	writeConf(t, path, "minlen = 2\n")
	s, err := Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, pwquality.MinLengthFloor, s.MinLength())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pwquality.yaml")
	writeConf(t, path, `min_length: 14
max_sequence: 4
user_check: false
bad_words: [acme, initech]
`)
	s, err := Read(context.Background(), path)
	require.NoError(t, err)
	p := s.Snapshot()
	assert.Equal(t, 14, p.MinLength)
	assert.Equal(t, 4, p.MaxSequence)
	assert.False(t, p.UserCheck)
	assert.Equal(t, []string{"acme", "initech"}, p.BadWords)
}

func TestLoadDropIns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pwquality.conf")
	writeConf(t, path, "minlen = 10\nminclass = 2\n")
	writeConf(t, filepath.Join(dir, "pwquality.conf.d", "20-site.conf"), "minlen = 16\n")
	writeConf(t, filepath.Join(dir, "pwquality.conf.d", "10-base.conf"), "minlen = 14\nmaxrepeat = 2\n")
	writeConf(t, filepath.Join(dir, "pwquality.conf.d", "ignored.txt"), "minlen = 99\n")

	s, err := Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 16, s.MinLength())
	assert.Equal(t, 2, s.MinClasses())
	v, err := s.GetInt(pwquality.SettingMaxRepeat)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    pwquality.Reason
	}{
		{"unknown option", "minlen = 10\nfrobnicate = 1\n", pwquality.ErrConfigMalformed},
		{"not an integer", "minlen = ten\n", pwquality.ErrInteger},
		{"missing value", "minlen\n", pwquality.ErrInteger},
		{"out of range", "minclass = 9\n", pwquality.ErrConfigMalformed},
		{"flag value", "enforcing = 2\n", pwquality.ErrConfigMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pwquality.conf")
			writeConf(t, path, tt.content)

			s := pwquality.NewSettings()
			err := Load(context.Background(), s, path)
			require.Error(t, err)
			assert.Equal(t, tt.want, pwquality.ReasonOf(err))
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 8, s.MinLength(), "settings must be left untouched")
		})
	}
}

func TestLoadReportsEveryProblem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pwquality.conf")
	writeConf(t, path, "minlen = x\nbogus = 1\n")
	err := Load(context.Background(), pwquality.NewSettings(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, pwquality.ErrInteger)
	assert.ErrorIs(t, err, pwquality.ErrUnknownSetting)
	assert.Contains(t, err.Error(), "bogus")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pwquality.yml")
	writeConf(t, path, "min_length: [1\n")
	err := Load(context.Background(), pwquality.NewSettings(), path)
	assert.ErrorIs(t, err, pwquality.ErrConfigMalformed)
}

func TestLoadMissingFile(t *testing.T) {
	err := Load(context.Background(), pwquality.NewSettings(), filepath.Join(t.TempDir(), "nope.conf"))
	require.Error(t, err)
	assert.Equal(t, pwquality.ErrConfigOpen, pwquality.ReasonOf(err))
}

func TestParseOption(t *testing.T) {
	s := pwquality.NewSettings()
	require.NoError(t, ParseOption(s, "minlen=11"))
	require.NoError(t, ParseOption(s, " max_sequence = 3 "))
	require.NoError(t, ParseOption(s, "gecoscheck"))
	require.NoError(t, ParseOption(s, "badwords=foo bar"))

	p := s.Snapshot()
	assert.Equal(t, 11, p.MinLength)
	assert.Equal(t, 3, p.MaxSequence)
	assert.True(t, p.GecosCheck)
	assert.Equal(t, []string{"foo", "bar"}, p.BadWords)

	assert.ErrorIs(t, ParseOption(s, "nosuch=1"), pwquality.ErrUnknownSetting)
	assert.Equal(t, pwquality.ErrUnknownSetting, pwquality.ReasonOf(ParseOption(s, "nosuch=1")))
	assert.Equal(t, pwquality.ErrInteger, pwquality.ReasonOf(ParseOption(s, "minlen=abc")))
}

func TestWriteRoundTrip(t *testing.T) {
	s := pwquality.NewSettings()
	s.SetMinLength(15)
	s.SetOtherCredit(-2)
	s.SetBadWords([]string{"acme"})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))
	assert.Contains(t, buf.String(), "minlen = 15\n")
	assert.Contains(t, buf.String(), "ocredit = -2\n")

	path := filepath.Join(t.TempDir(), "pwquality.conf")
	writeConf(t, path, buf.String())
	back, err := Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, s.Snapshot(), back.Snapshot())
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pwquality.conf")
	writeConf(t, path, "minlen = 10\n")

	target, err := Read(context.Background(), path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloads := make(chan error, 16)
	require.NoError(t, Watch(ctx, path, target, func(err error) { reloads <- err }))

	replaceConf(t, path, "minlen = 20\n")
	require.Eventually(t, func() bool { return target.MinLength() == 20 }, 5*time.Second, 20*time.Millisecond)

	replaceConf(t, path, "minlen = nope\n")
	require.Eventually(t, func() bool {
		for {
			select {
			case err := <-reloads:
				if err != nil {
					return true
				}
			default:
				return false
			}
		}
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, 20, target.MinLength())
}
