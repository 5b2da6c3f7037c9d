// pkg/config_loader/validate.go

package config_loader

import (
	"sync"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwquality"
	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// rules constrain values read from configuration. The settings store
// itself accepts any integer; these catch typos in files.
var rules = map[pwquality.Setting]string{
	pwquality.SettingMinDiff:        "gte=0",
	pwquality.SettingMinLength:      "gte=0",
	pwquality.SettingMinClasses:     "gte=0,lte=4",
	pwquality.SettingMaxRepeat:      "gte=0",
	pwquality.SettingMaxClassRepeat: "gte=0",
	pwquality.SettingMaxSequence:    "gte=0",
	pwquality.SettingGecosCheck:     "oneof=0 1",
	pwquality.SettingDictCheck:      "oneof=0 1",
	pwquality.SettingUserCheck:      "oneof=0 1",
	pwquality.SettingEnforcing:      "oneof=0 1",
	pwquality.SettingDictPath:       "omitempty,printascii",
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validateValue(id pwquality.Setting, value interface{}) error {
	tag, ok := rules[id]
	if !ok {
		return nil
	}
	validateOnce.Do(func() { validate = validator.New() })
	if err := validate.Var(value, tag); err != nil {
		var verrs validator.ValidationErrors
		if cerr.As(err, &verrs) && len(verrs) > 0 {
			return cerr.Newf("option %s: value %v fails %q", id.ConfName(), value, verrs[0].Tag()+paramSuffix(verrs[0].Param()))
		}
		return cerr.Wrapf(err, "option %s", id.ConfName())
	}
	return nil
}

func paramSuffix(p string) string {
	if p == "" {
		return ""
	}
	return "=" + p
}
