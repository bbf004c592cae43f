package matching

import (
	"bytes"
	"encoding/json"
)

// SkillList is a skill sequence taken from a request body. Decoding never
// fails: anything other than a JSON array marks the list invalid, and
// non-string array elements are dropped.
type SkillList struct {
	Items []string
	valid bool
}

func NewSkillList(items ...string) SkillList {
	return SkillList{Items: items, valid: true}
}

func (l SkillList) Valid() bool {
	return l.valid
}

func (l *SkillList) UnmarshalJSON(b []byte) error {
	l.Items = nil
	l.valid = false

	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		return nil
	}

	var raw []any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}

	// null decodes into a string without error, so filter on the decoded type.
	items := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			items = append(items, s)
		}
	}

	l.Items = items
	l.valid = true
	return nil
}

func (l SkillList) MarshalJSON() ([]byte, error) {
	if !l.valid {
		return []byte("null"), nil
	}
	if l.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Items)
}
