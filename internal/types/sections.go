package types

import (
	"encoding/json"
	"fmt"
)

// HeaderSection is the pseudo-section holding every line before the first detected header
const HeaderSection = "Header"

// Section is one titled block of resume text
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SectionMap is an ordered mapping from section title to body.
// Titles keep the position of their first occurrence.
type SectionMap struct {
	sections []Section
	index    map[string]int
}

// NewSectionMap returns a map that already contains an empty Header section
func NewSectionMap() *SectionMap {
	m := &SectionMap{index: make(map[string]int)}
	m.Append(HeaderSection, "")
	return m
}

// Append adds body under title. A title that already exists keeps its position and
// the new body is joined to the existing one with a newline.
func (m *SectionMap) Append(title, body string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[title]; ok {
		switch {
		case m.sections[i].Body == "":
			m.sections[i].Body = body
		case body != "":
			m.sections[i].Body += "\n" + body
		}
		return
	}
	m.index[title] = len(m.sections)
	m.sections = append(m.sections, Section{Title: title, Body: body})
}

// Get returns the body stored under title
func (m *SectionMap) Get(title string) (string, bool) {
	if m == nil {
		return "", false
	}
	i, ok := m.index[title]
	if !ok {
		return "", false
	}
	return m.sections[i].Body, true
}

// Titles returns section titles in document order
func (m *SectionMap) Titles() []string {
	if m == nil {
		return nil
	}
	titles := make([]string, len(m.sections))
	for i, s := range m.sections {
		titles[i] = s.Title
	}
	return titles
}

// Sections returns a copy of the sections in document order
func (m *SectionMap) Sections() []Section {
	if m == nil {
		return nil
	}
	out := make([]Section, len(m.sections))
	copy(out, m.sections)
	return out
}

// Len returns the number of sections, including Header
func (m *SectionMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.sections)
}

// MarshalJSON encodes the map as an ordered array of {title, body}
func (m *SectionMap) MarshalJSON() ([]byte, error) {
	sections := m.Sections()
	if sections == nil {
		sections = []Section{}
	}
	return json.Marshal(sections)
}

// UnmarshalJSON decodes the ordered array form produced by MarshalJSON
func (m *SectionMap) UnmarshalJSON(data []byte) error {
	var sections []Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("failed to unmarshal sections: %w", err)
	}
	m.sections = nil
	m.index = make(map[string]int, len(sections))
	for _, s := range sections {
		m.Append(s.Title, s.Body)
	}
	return nil
}
