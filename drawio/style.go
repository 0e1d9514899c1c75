package drawio

import "strings"

var baseStyles = map[string]string{
	"rectangle":         "whiteSpace=wrap;html=1;",
	"rounded rectangle": "rounded=1;whiteSpace=wrap;html=1;",
	"ellipse":           "ellipse;whiteSpace=wrap;html=1;",
	"text":              "text;html=1;align=center;verticalAlign=middle;",
}

// BaseStyle returns the style string of a named base shape.
func BaseStyle(name string) (string, bool) {
	s, ok := baseStyles[name]
	return s, ok
}

// Style is an ordered set of draw.io style properties. Keys without a value
// (shape names such as "ellipse") are kept and written bare.
type Style struct {
	keys   []string
	values map[string]string
}

// ParseStyle parses a "key=value;key2=value2;" style string.
func ParseStyle(s string) *Style {
	st := &Style{values: make(map[string]string)}
	st.Apply(s)
	return st
}

// Apply merges a style string into s. Later values win; key order is the
// order of first appearance.
func (s *Style) Apply(str string) {
	for _, part := range strings.Split(str, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		s.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
}

func (s *Style) Set(key, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

func (s *Style) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *Style) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

func (s *Style) String() string {
	var b strings.Builder
	for _, k := range s.keys {
		b.WriteString(k)
		if v := s.values[k]; v != "" {
			b.WriteByte('=')
			b.WriteString(v)
		}
		b.WriteByte(';')
	}
	return b.String()
}
