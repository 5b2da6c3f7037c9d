// pkg/config_loader/parse.go

package config_loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwquality"
	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"
)

// entry is one raw "name = value" pair. present is false for a bare
// option name, which turns a flag option on.
type entry struct {
	name    string
	value   string
	present bool
}

// parseConf reads pwquality.conf syntax. Values run to the end of the line;
// '#' and '!' start comments.
func parseConf(data []byte) ([]entry, error) {
	l := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := l.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	entries := make([]entry, 0, p.Len())
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		v = strings.TrimSpace(v)
		entries = append(entries, entry{name: k, value: v, present: v != ""})
	}
	return entries, nil
}

// parseYAML reads a flat mapping of option names to scalars. bad_words may
// also be given as a list.
func parseYAML(data []byte) ([]entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of option names", root.Line)
	}
	entries := make([]entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			v := val.Value
			switch v {
			case "true":
				v = "1"
			case "false":
				v = "0"
			}
			entries = append(entries, entry{name: key.Value, value: v, present: v != "" && val.Tag != "!!null"})
		case yaml.SequenceNode:
			words := make([]string, 0, len(val.Content))
			for _, w := range val.Content {
				words = append(words, w.Value)
			}
			v := strings.Join(words, " ")
			entries = append(entries, entry{name: key.Value, value: v, present: true})
		default:
			return nil, fmt.Errorf("line %d: option %q must be a scalar or a list", val.Line, key.Value)
		}
	}
	return entries, nil
}

// applyEntries writes entries to stage, collecting every problem.
func applyEntries(stage *pwquality.Settings, file string, entries []entry) error {
	var result *multierror.Error
	first := pwquality.Reason(0)
	for _, e := range entries {
		if reason, err := applyEntry(stage, e); err != nil {
			if first == 0 {
				first = reason
			}
			result = multierror.Append(result, cerr.Wrapf(err, "%s: %s", file, e.name))
		}
	}
	if result == nil {
		return nil
	}
	return &pwquality.PolicyError{Reason: first, Cause: result.ErrorOrNil()}
}

// ParseOption applies a single "name=value" option, the way the command
// line --set flag and library callers configure one setting.
func ParseOption(s *pwquality.Settings, option string) error {
	name, value, found := strings.Cut(option, "=")
	e := entry{name: strings.TrimSpace(name), value: strings.TrimSpace(value), present: found}
	if e.value == "" {
		e.present = false
	}
	if _, ok := pwquality.LookupSetting(e.name); !ok {
		return &pwquality.PolicyError{
			Reason: pwquality.ErrUnknownSetting,
			Cause:  cerr.Newf("option %q", e.name),
		}
	}
	reason, err := applyEntry(s, e)
	if err != nil {
		return &pwquality.PolicyError{Reason: reason, Cause: err}
	}
	return nil
}

func applyEntry(s *pwquality.Settings, e entry) (pwquality.Reason, error) {
	id, ok := pwquality.LookupSetting(e.name)
	if !ok {
		return pwquality.ErrConfigMalformed, cerr.Wrapf(pwquality.ErrUnknownSetting, "option %q", e.name)
	}

	if id.IsString() {
		if err := validateValue(id, e.value); err != nil {
			return pwquality.ErrConfigMalformed, err
		}
		if err := s.SetStr(id, e.value); err != nil {
			return pwquality.ReasonOf(err), err
		}
		return 0, nil
	}

	var v int
	switch {
	case !e.present && id.IsBool():
		v = 1
	case !e.present:
		return pwquality.ErrInteger, cerr.Wrapf(pwquality.ErrInteger, "option %q needs a value", e.name)
	default:
		n, err := strconv.Atoi(e.value)
		if err != nil {
			return pwquality.ErrInteger, cerr.Wrapf(pwquality.ErrInteger, "option %q: %q is not an integer", e.name, e.value)
		}
		v = n
	}
	if err := validateValue(id, v); err != nil {
		return pwquality.ErrConfigMalformed, err
	}
	if err := s.SetInt(id, v); err != nil {
		return pwquality.ReasonOf(err), err
	}
	return 0, nil
}
