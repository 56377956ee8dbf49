// Package types defines the data model shared across the tailoring pipeline,
// the post-processor, and the batch orchestrator.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Resume is the structured resume document. The same shape serves as both the
// read-only template loaded from disk and the tailored output produced by the
// pipeline; the template is never mutated in place, workers operate on clones.
//
// Experience ordering is load-bearing: index 0 is the most recent position and
// the last index is the oldest. Several transformations key off those
// positions.
type Resume struct {
	Name       string            `json:"name"`
	Headline   string            `json:"headline,omitempty"`
	Contact    map[string]string `json:"contact"`
	Summary    string            `json:"summary"`
	Experience []ExperienceEntry `json:"experience"`
	Education  EducationList     `json:"education,omitempty"`
	Skills     Skills            `json:"skills,omitempty"`
	References []Reference       `json:"references,omitempty"`
}

// ExperienceEntry is a single position. Company may embed a location in a
// parenthetical suffix ("Acme Corp (Berlin, Germany)"); Period is free text,
// usually "<from> - <to>".
type ExperienceEntry struct {
	Title      string     `json:"title"`
	Company    string     `json:"company"`
	Period     string     `json:"period,omitempty"`
	Summary    string     `json:"summary,omitempty"`
	Skills     StringList `json:"skills,omitempty"`
	Highlights []string   `json:"highlights,omitempty"`
}

// Education is a single education record.
type Education struct {
	Degree      string `json:"degree"`
	University  string `json:"university"`
	Period      string `json:"period,omitempty"`
	Description string `json:"description,omitempty"`
}

// Reference is a professional reference with an optional link.
type Reference struct {
	Name string `json:"name"`
	Text string `json:"text,omitempty"`
	Link string `json:"link,omitempty"`
}

// Clone returns a deep copy. Batch workers must never share a mutable resume,
// so each row clones the template before tailoring.
func (r *Resume) Clone() *Resume {
	out := *r
	if r.Contact != nil {
		out.Contact = make(map[string]string, len(r.Contact))
		for k, v := range r.Contact {
			out.Contact[k] = v
		}
	}
	out.Experience = make([]ExperienceEntry, len(r.Experience))
	for i, exp := range r.Experience {
		out.Experience[i] = exp
		out.Experience[i].Skills = append(StringList(nil), exp.Skills...)
		out.Experience[i].Highlights = append([]string(nil), exp.Highlights...)
	}
	out.Education = r.Education.clone()
	out.Skills = r.Skills.clone()
	out.References = append([]Reference(nil), r.References...)
	return &out
}

// VisitStrings applies fn to every string leaf of the resume, replacing each
// value with fn's return. Used by transformations that must touch the whole
// document, like markdown bold normalization.
func (r *Resume) VisitStrings(fn func(string) string) {
	r.Name = fn(r.Name)
	r.Headline = fn(r.Headline)
	r.Summary = fn(r.Summary)
	for k, v := range r.Contact {
		r.Contact[k] = fn(v)
	}
	for i := range r.Experience {
		exp := &r.Experience[i]
		exp.Title = fn(exp.Title)
		exp.Company = fn(exp.Company)
		exp.Period = fn(exp.Period)
		exp.Summary = fn(exp.Summary)
		for j := range exp.Skills {
			exp.Skills[j] = fn(exp.Skills[j])
		}
		for j := range exp.Highlights {
			exp.Highlights[j] = fn(exp.Highlights[j])
		}
	}
	for i := range r.Education.Items {
		edu := &r.Education.Items[i]
		edu.Degree = fn(edu.Degree)
		edu.University = fn(edu.University)
		edu.Period = fn(edu.Period)
		edu.Description = fn(edu.Description)
	}
	r.Skills.visitStrings(fn)
	for i := range r.References {
		ref := &r.References[i]
		ref.Name = fn(ref.Name)
		ref.Text = fn(ref.Text)
		ref.Link = fn(ref.Link)
	}
}

// StringList accepts either a JSON array of strings or a single string.
// LLM output and hand-written templates use both shapes for per-entry skills.
type StringList []string

// UnmarshalJSON implements permissive decoding for StringList.
func (s *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	if data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*s = StringList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = list
	return nil
}

// EducationList accepts either a single education object or an array of them.
// The original shape is preserved on re-marshal.
type EducationList struct {
	Items  []Education
	single bool
}

// UnmarshalJSON implements permissive decoding for EducationList.
func (e *EducationList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		e.Items = nil
		e.single = false
		return nil
	}
	switch data[0] {
	case '{':
		var one Education
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		e.Items = []Education{one}
		e.single = true
		return nil
	case '[':
		var many []Education
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		e.Items = many
		e.single = false
		return nil
	default:
		return fmt.Errorf("education must be an object or an array, got %s", string(data[:1]))
	}
}

// MarshalJSON preserves the shape the document was parsed with.
func (e EducationList) MarshalJSON() ([]byte, error) {
	if e.single && len(e.Items) == 1 {
		return json.Marshal(e.Items[0])
	}
	return json.Marshal(e.Items)
}

func (e EducationList) clone() EducationList {
	return EducationList{
		Items:  append([]Education(nil), e.Items...),
		single: e.single,
	}
}
