package repository

import (
	"encoding/json"
	"strings"
)

// Skills is a list of skill names.
//
// It decodes from a JSON array (["go","sql"]) or from a comma-separated
// string ("go, sql"), which is how skills arrive through query parameters.
type Skills []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Skills) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = normalizeSkills(list)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*s = normalizeSkills(strings.Split(joined, ","))
	return nil
}

func normalizeSkills(raw []string) Skills {
	skills := make(Skills, 0, len(raw))
	for _, skill := range raw {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}
