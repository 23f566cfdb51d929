package skill

import (
	"errors"
	"sort"
	"strings"
)

var ErrUnknownField = errors.New("unknown field")

type fieldSetter func(s *Skill, value string) error

// editable lists the fields the update panel may change one at a time.
var editable = map[string]fieldSetter{
	"skill_type": func(s *Skill, v string) error {
		t, err := ParseType(v)
		if err != nil {
			return err
		}
		s.Type = t
		return nil
	},
	"completion_status": func(s *Skill, v string) error {
		c, err := ParseCompletionStatus(v)
		if err != nil {
			return err
		}
		s.CompletionStatus = c
		return nil
	},
	"proficiency_level": func(s *Skill, v string) error {
		p, err := ParseProficiency(v)
		if err != nil {
			return err
		}
		s.Proficiency = p
		return nil
	},
	"reason_to_learn": func(s *Skill, v string) error {
		s.ReasonToLearn = strings.TrimSpace(v)
		return nil
	},
}

func editableFields() []string {
	out := make([]string, 0, len(editable))
	for k := range editable {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SetField applies a single named field edit. The skill is left untouched
// when the field is unknown or the value does not parse.
func (s *Skill) SetField(field, value string) error {
	set, ok := editable[strings.TrimSpace(field)]
	if !ok {
		return ErrUnknownField
	}
	return set(s, value)
}
