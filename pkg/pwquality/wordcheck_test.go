package pwquality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitGecos(t *testing.T) {
	assert.Equal(t, []string{"Mary", "Jane", "Watson", "Room", "4", "555-1234"},
		SplitGecos("Mary Jane Watson,Room 4,555-1234,,"))
	assert.Empty(t, SplitGecos(",,,"))
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		password string
		word     string
		want     bool
	}{
		{"xxsmithyy", "Smith", true},
		{"xxhtimsyy", "Smith", true},
		{"xxdoeyy", "Doe", false},
		{"nothing", "Smith", false},
		{"strasse1", "STRAßE", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, containsWord(fold(tt.password), tt.word), "%s/%s", tt.password, tt.word)
	}
}

func TestContainsUserHasNoLengthThreshold(t *testing.T) {
	assert.True(t, containsUser(fold("xBoby1"), "bob"))
	assert.True(t, containsUser(fold("xeijy1"), "jie"))
	assert.False(t, containsUser(fold("anything"), ""))
}

func TestSystemGecosUnknownUser(t *testing.T) {
	words, err := SystemGecos{}.Gecos("no-such-user-pwquality-test")
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, Distance("Secret", "sECRET"))
	assert.Equal(t, 1, Distance("secret1", "secret2"))
	assert.Equal(t, 3, Distance("kitten", "sitting"))
	assert.Equal(t, 1, Distance("héllo", "hello"))
}

func TestTooSimilar(t *testing.T) {
	p := NewSettings().Snapshot()
	p.MinDiff = 3
	assert.True(t, tooSimilar(p, "secret12", "secret1"))
	assert.False(t, tooSimilar(p, "totally-new", "secret1"))
	// Twice the old length disables the comparison.
	assert.False(t, tooSimilar(p, "abcdabcd", "abcd"))
	p.MinDiff = 0
	assert.False(t, tooSimilar(p, "secret12", "secret1"))
}

func TestTooSimilarLengthExemption(t *testing.T) {
	p := NewSettings().Snapshot()
	p.MinDiff = 7
	tests := []struct {
		name     string
		password string
		old      string
		want     bool
	}{
		{"one short of twice", "Qwxz1!Qwxz1", "Qwxz1!", true},
		{"exactly twice", "Qwxz1!Qwxz1!", "Qwxz1!", false},
		{"longer than twice", "Qwxz1!Qwxz1!a", "Qwxz1!", false},
		{"runes, not bytes", "ééééé", "ééé", true},
		{"runes, twice", "éééééé", "ééé", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tooSimilar(p, tt.password, tt.old))
		})
	}
}
