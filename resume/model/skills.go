package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SkillCategory is one named group of skills. Skill order inside a category
// is display order.
type SkillCategory struct {
	Name   string
	Skills []string
}

// TechnicalSkills is an ordered list of skill categories. It serializes as a
// JSON object ({"Languages": ["Go", "Python"], ...}) whose key order is
// preserved on both encode and decode, because category order is display
// order and renderers must be deterministic.
type TechnicalSkills []SkillCategory

// MarshalJSON writes the categories as a JSON object in slice order.
func (ts TechnicalSkills) MarshalJSON() ([]byte, error) {
	if ts == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range ts {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		skills, err := json.Marshal(cat.Skills)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(skills)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object token by token so key order survives.
func (ts *TechnicalSkills) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*ts = nil
		return nil
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("technicalSkills: expected object, got %v", tok)
	}

	out := TechnicalSkills{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("technicalSkills: expected string key, got %v", keyTok)
		}
		var skills []string
		if err := dec.Decode(&skills); err != nil {
			return fmt.Errorf("technicalSkills[%q]: %w", key, err)
		}
		out = append(out, SkillCategory{Name: key, Skills: skills})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*ts = out
	return nil
}
