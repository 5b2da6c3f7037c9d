// pkg/pwquality/settings.go

package pwquality

import (
	"sort"
	"strings"
	"sync"
)

// Setting identifies a policy option. The numeric ids are part of the
// public contract and are never renumbered; 2 is reserved.
type Setting int

const (
	SettingMinDiff        Setting = 1
	SettingMinLength      Setting = 3
	SettingDigitCredit    Setting = 4
	SettingUpperCredit    Setting = 5
	SettingLowerCredit    Setting = 6
	SettingOtherCredit    Setting = 7
	SettingMinClasses     Setting = 8
	SettingMaxRepeat      Setting = 9
	SettingDictPath       Setting = 10
	SettingMaxClassRepeat Setting = 11
	SettingGecosCheck     Setting = 12
	SettingBadWords       Setting = 13
	SettingMaxSequence    Setting = 14
	SettingDictCheck      Setting = 15
	SettingUserCheck      Setting = 16
	SettingEnforcing      Setting = 17
)

// MinLengthFloor is the smallest min_length the store will hold.
const MinLengthFloor = 6

type settingKind int

const (
	kindInt settingKind = iota
	kindBool
	kindStr
)

type settingInfo struct {
	name     string // name used in this package's API and logs
	confName string // name used in pwquality.conf
	kind     settingKind
}

var settingTable = map[Setting]settingInfo{
	SettingMinDiff:        {"min_diff", "difok", kindInt},
	SettingMinLength:      {"min_length", "minlen", kindInt},
	SettingDigitCredit:    {"digit_credit", "dcredit", kindInt},
	SettingUpperCredit:    {"upper_credit", "ucredit", kindInt},
	SettingLowerCredit:    {"lower_credit", "lcredit", kindInt},
	SettingOtherCredit:    {"other_credit", "ocredit", kindInt},
	SettingMinClasses:     {"min_classes", "minclass", kindInt},
	SettingMaxRepeat:      {"max_repeat", "maxrepeat", kindInt},
	SettingDictPath:       {"dictionary_path", "dictpath", kindStr},
	SettingMaxClassRepeat: {"max_class_repeat", "maxclassrepeat", kindInt},
	SettingGecosCheck:     {"gecos_check", "gecoscheck", kindBool},
	SettingBadWords:       {"bad_words", "badwords", kindStr},
	SettingMaxSequence:    {"max_sequence", "maxsequence", kindInt},
	SettingDictCheck:      {"dictionary_check", "dictcheck", kindBool},
	SettingUserCheck:      {"user_check", "usercheck", kindBool},
	SettingEnforcing:      {"enforcing", "enforcing", kindBool},
}

var settingsByName = func() map[string]Setting {
	m := make(map[string]Setting, 2*len(settingTable))
	for id, info := range settingTable {
		m[info.name] = id
		m[info.confName] = id
	}
	return m
}()

// AllSettings returns every known setting ordered by id.
func AllSettings() []Setting {
	out := make([]Setting, 0, len(settingTable))
	for id := range settingTable {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LookupSetting resolves either the API name ("min_length") or the
// pwquality.conf name ("minlen"), case-insensitively.
func LookupSetting(name string) (Setting, bool) {
	id, ok := settingsByName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// Valid reports whether s is a known setting id.
func (s Setting) Valid() bool {
	_, ok := settingTable[s]
	return ok
}

// IsString reports whether s holds a string value.
func (s Setting) IsString() bool {
	return settingTable[s].kind == kindStr
}

// IsBool reports whether s is an integer setting used as a 0/1 flag.
func (s Setting) IsBool() bool {
	return settingTable[s].kind == kindBool
}

func (s Setting) String() string {
	if info, ok := settingTable[s]; ok {
		return info.name
	}
	return "unknown_setting"
}

// ConfName returns the pwquality.conf spelling of the setting.
func (s Setting) ConfName() string {
	return settingTable[s].confName
}

// Settings is the mutable settings store. The zero value is not usable;
// create one with NewSettings. Settings are safe for concurrent use.
type Settings struct {
	mu   sync.RWMutex
	ints map[Setting]int
	strs map[Setting]string
}

// NewSettings returns a store holding the default policy.
func NewSettings() *Settings {
	return &Settings{
		ints: map[Setting]int{
			SettingMinDiff:        1,
			SettingMinLength:      8,
			SettingDigitCredit:    0,
			SettingUpperCredit:    0,
			SettingLowerCredit:    0,
			SettingOtherCredit:    0,
			SettingMinClasses:     0,
			SettingMaxRepeat:      0,
			SettingMaxClassRepeat: 0,
			SettingMaxSequence:    0,
			SettingGecosCheck:     0,
			SettingDictCheck:      1,
			SettingUserCheck:      1,
			SettingEnforcing:      1,
		},
		strs: map[Setting]string{
			SettingDictPath: "",
			SettingBadWords: "",
		},
	}
}

// SetInt stores an integer option. min_length is clamped to MinLengthFloor;
// every other value is stored as given.
func (s *Settings) SetInt(id Setting, value int) error {
	info, ok := settingTable[id]
	if !ok {
		return ErrUnknownSetting
	}
	if info.kind == kindStr {
		return ErrNonIntSetting
	}
	if id == SettingMinLength && value < MinLengthFloor {
		value = MinLengthFloor
	}
	s.mu.Lock()
	s.ints[id] = value
	s.mu.Unlock()
	return nil
}

// GetInt reads an integer option.
func (s *Settings) GetInt(id Setting) (int, error) {
	info, ok := settingTable[id]
	if !ok {
		return 0, ErrUnknownSetting
	}
	if info.kind == kindStr {
		return 0, ErrNonIntSetting
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ints[id], nil
}

// SetStr stores a string option.
func (s *Settings) SetStr(id Setting, value string) error {
	info, ok := settingTable[id]
	if !ok {
		return ErrUnknownSetting
	}
	if info.kind != kindStr {
		return ErrNonStrSetting
	}
	s.mu.Lock()
	s.strs[id] = value
	s.mu.Unlock()
	return nil
}

// GetStr reads a string option. The boolean is false when the option is
// unset (empty).
func (s *Settings) GetStr(id Setting) (string, bool, error) {
	info, ok := settingTable[id]
	if !ok {
		return "", false, ErrUnknownSetting
	}
	if info.kind != kindStr {
		return "", false, ErrNonStrSetting
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := s.strs[id]
	return v, v != "", nil
}

// Clone returns an independent copy of the store.
func (s *Settings) Clone() *Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := &Settings{
		ints: make(map[Setting]int, len(s.ints)),
		strs: make(map[Setting]string, len(s.strs)),
	}
	for k, v := range s.ints {
		c.ints[k] = v
	}
	for k, v := range s.strs {
		c.strs[k] = v
	}
	return c
}

// Replace overwrites every option with the values held by from. Readers
// see either the old or the new policy, never a mix.
func (s *Settings) Replace(from *Settings) {
	c := from.Clone()
	s.mu.Lock()
	s.ints, s.strs = c.ints, c.strs
	s.mu.Unlock()
}

// Snapshot returns the immutable policy used by a single evaluation.
func (s *Settings) Snapshot() Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Policy{
		MinDiff:        s.ints[SettingMinDiff],
		MinLength:      s.ints[SettingMinLength],
		DigitCredit:    s.ints[SettingDigitCredit],
		UpperCredit:    s.ints[SettingUpperCredit],
		LowerCredit:    s.ints[SettingLowerCredit],
		OtherCredit:    s.ints[SettingOtherCredit],
		MinClasses:     s.ints[SettingMinClasses],
		MaxRepeat:      s.ints[SettingMaxRepeat],
		MaxClassRepeat: s.ints[SettingMaxClassRepeat],
		MaxSequence:    s.ints[SettingMaxSequence],
		GecosCheck:     s.ints[SettingGecosCheck] != 0,
		DictCheck:      s.ints[SettingDictCheck] != 0,
		UserCheck:      s.ints[SettingUserCheck] != 0,
		Enforcing:      s.ints[SettingEnforcing] != 0,
		DictPath:       s.strs[SettingDictPath],
		BadWords:       strings.Fields(s.strs[SettingBadWords]),
	}
}

// Typed accessors. Setters on known ids cannot fail, so errors are dropped.

func (s *Settings) SetMinDiff(v int) { _ = s.SetInt(SettingMinDiff, v) }
func (s *Settings) SetMinLength(v int) { _ = s.SetInt(SettingMinLength, v) }
func (s *Settings) SetDigitCredit(v int) { _ = s.SetInt(SettingDigitCredit, v) }
func (s *Settings) SetUpperCredit(v int) { _ = s.SetInt(SettingUpperCredit, v) }
func (s *Settings) SetLowerCredit(v int) { _ = s.SetInt(SettingLowerCredit, v) }
func (s *Settings) SetOtherCredit(v int) { _ = s.SetInt(SettingOtherCredit, v) }
func (s *Settings) SetMinClasses(v int) { _ = s.SetInt(SettingMinClasses, v) }
func (s *Settings) SetMaxRepeat(v int) { _ = s.SetInt(SettingMaxRepeat, v) }
func (s *Settings) SetMaxClassRepeat(v int) { _ = s.SetInt(SettingMaxClassRepeat, v) }
func (s *Settings) SetMaxSequence(v int) { _ = s.SetInt(SettingMaxSequence, v) }
func (s *Settings) SetGecosCheck(on bool) { _ = s.SetInt(SettingGecosCheck, boolInt(on)) }
func (s *Settings) SetDictCheck(on bool) { _ = s.SetInt(SettingDictCheck, boolInt(on)) }
func (s *Settings) SetUserCheck(on bool) { _ = s.SetInt(SettingUserCheck, boolInt(on)) }
func (s *Settings) SetEnforcing(on bool) { _ = s.SetInt(SettingEnforcing, boolInt(on)) }
func (s *Settings) SetDictPath(path string) { _ = s.SetStr(SettingDictPath, path) }
func (s *Settings) SetBadWords(w []string) { _ = s.SetStr(SettingBadWords, strings.Join(w, " ")) }
func (s *Settings) MinDiff() int { return s.intOf(SettingMinDiff) }
func (s *Settings) MinLength() int { return s.intOf(SettingMinLength) }
func (s *Settings) MinClasses() int { return s.intOf(SettingMinClasses) }
func (s *Settings) Enforcing() bool { return s.intOf(SettingEnforcing) != 0 }
func (s *Settings) BadWords() []string { return s.Snapshot().BadWords }
func (s *Settings) intOf(id Setting) int {
	v, _ := s.GetInt(id)
	return v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Policy is an immutable view of Settings taken for one evaluation.
type Policy struct {
	MinDiff        int
	MinLength      int
	DigitCredit    int
	UpperCredit    int
	LowerCredit    int
	OtherCredit    int
	MinClasses     int
	MaxRepeat      int
	MaxClassRepeat int
	MaxSequence    int
	GecosCheck     bool
	DictCheck      bool
	UserCheck      bool
	Enforcing      bool
	DictPath       string
	BadWords       []string
}

// credit returns the configured credit for a class.
func (p Policy) credit(c Class) int {
	switch c {
	case ClassDigit:
		return p.DigitCredit
	case ClassUpper:
		return p.UpperCredit
	case ClassLower:
		return p.LowerCredit
	default:
		return p.OtherCredit
	}
}
