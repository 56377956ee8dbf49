package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Skills holds either a flat list of skill names or a mapping of category to
// skill names. Templates in the wild use both shapes, so decoding is
// permissive; the parsed shape is preserved on re-marshal, including category
// order.
type Skills struct {
	Flat        []string
	Categories  map[string][]string
	Order       []string
	categorized bool
}

// NewFlatSkills builds a flat skills list.
func NewFlatSkills(skills ...string) Skills {
	return Skills{Flat: skills}
}

// NewCategorizedSkills builds a categorized skills structure with the given
// category order.
func NewCategorizedSkills(order []string, categories map[string][]string) Skills {
	return Skills{Categories: categories, Order: order, categorized: true}
}

// IsCategorized reports whether skills are organized by category.
func (s *Skills) IsCategorized() bool {
	return s.categorized
}

// IsEmpty reports whether no skills are present in either shape.
func (s *Skills) IsEmpty() bool {
	if s.categorized {
		for _, list := range s.Categories {
			if len(list) > 0 {
				return false
			}
		}
		return true
	}
	return len(s.Flat) == 0
}

// All returns every skill string regardless of shape, in document order.
func (s *Skills) All() []string {
	if !s.categorized {
		return append([]string(nil), s.Flat...)
	}
	var out []string
	for _, cat := range s.Order {
		out = append(out, s.Categories[cat]...)
	}
	return out
}

// AddToCategory appends a skill to the named category, creating the category
// if needed. Converts nothing; callers must only use this on categorized
// skills.
func (s *Skills) AddToCategory(category, skill string) {
	if s.Categories == nil {
		s.Categories = make(map[string][]string)
	}
	if _, ok := s.Categories[category]; !ok {
		s.Order = append(s.Order, category)
	}
	s.Categories[category] = append(s.Categories[category], skill)
	s.categorized = true
}

// RemoveCategory drops a category and its skills.
func (s *Skills) RemoveCategory(category string) {
	delete(s.Categories, category)
	for i, cat := range s.Order {
		if cat == category {
			s.Order = append(s.Order[:i], s.Order[i+1:]...)
			break
		}
	}
}

// UnmarshalJSON accepts an array of strings or an object of category lists.
// Category order is preserved via token-level decoding.
func (s *Skills) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = Skills{}
		return nil
	}
	switch data[0] {
	case '[':
		var flat []string
		if err := json.Unmarshal(data, &flat); err != nil {
			return err
		}
		*s = Skills{Flat: flat}
		return nil
	case '{':
		dec := json.NewDecoder(bytes.NewReader(data))
		if _, err := dec.Token(); err != nil { // opening brace
			return err
		}
		out := Skills{Categories: make(map[string][]string), categorized: true}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, ok := keyTok.(string)
			if !ok {
				return fmt.Errorf("unexpected skills key token %v", keyTok)
			}
			var list StringList
			if err := dec.Decode(&list); err != nil {
				return fmt.Errorf("skills category %q: %w", key, err)
			}
			out.Order = append(out.Order, key)
			out.Categories[key] = list
		}
		*s = out
		return nil
	default:
		return fmt.Errorf("skills must be an array or an object, got %s", string(data[:1]))
	}
}

// MarshalJSON re-emits the shape the skills were parsed with.
func (s Skills) MarshalJSON() ([]byte, error) {
	if !s.categorized {
		if s.Flat == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(s.Flat)
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range s.Order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.Categories[cat])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s Skills) clone() Skills {
	out := Skills{
		Flat:        append([]string(nil), s.Flat...),
		Order:       append([]string(nil), s.Order...),
		categorized: s.categorized,
	}
	if s.Categories != nil {
		out.Categories = make(map[string][]string, len(s.Categories))
		for k, v := range s.Categories {
			out.Categories[k] = append([]string(nil), v...)
		}
	}
	return out
}

func (s *Skills) visitStrings(fn func(string) string) {
	for i := range s.Flat {
		s.Flat[i] = fn(s.Flat[i])
	}
	for cat, list := range s.Categories {
		for i := range list {
			list[i] = fn(list[i])
		}
		s.Categories[cat] = list
	}
}
