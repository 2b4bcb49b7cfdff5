package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Link is one named entry of a link table, kept in document order.
type Link struct {
	Key string
	URL string
}

// Links is an ordered mapping of names to links. A repeated name keeps its
// first position and takes the last value.
type Links []Link

func (l Links) set(key, url string) Links {
	url = strings.TrimSpace(url)
	for i := range l {
		if l[i].Key == key {
			l[i].URL = url
			return l
		}
	}
	return append(l, Link{Key: key, URL: url})
}

func (l Links) lookup(key string) (string, bool) {
	for _, link := range l {
		if link.Key == key {
			return link.URL, true
		}
	}
	return "", false
}

func (l *Links) UnmarshalYAML(node *yaml.Node) error {
	var out Links
	err := walkYAMLMapping(node, "names to links", func(key string, value *yaml.Node) error {
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: link for %q must be a string", value.Line, key)
		}
		url := value.Value
		if value.ShortTag() == "!!null" {
			url = ""
		}
		out = out.set(key, url)
		return nil
	})
	if err != nil {
		return err
	}
	*l = out
	return nil
}

func (l *Links) UnmarshalJSON(data []byte) error {
	var out Links
	err := walkJSONObject(data, "names to links", func(key string, dec *json.Decoder) error {
		var url *string
		if err := dec.Decode(&url); err != nil {
			return fmt.Errorf("link for %q must be a string: %w", key, err)
		}
		if url == nil {
			out = out.set(key, "")
		} else {
			out = out.set(key, *url)
		}
		return nil
	})
	if err != nil {
		return err
	}
	*l = out
	return nil
}

// Entry is a single class in the timetable.
type Entry struct {
	Course string `yaml:"course" json:"course"`
	Room   string `yaml:"room" json:"room"`
	Time   string `yaml:"time" json:"time"`
}

type dayBlock struct {
	Day     string
	Entries []Entry
}

// scheduleTable keeps the timetable keys in document order. Like Links,
// a repeated day takes the last value.
type scheduleTable []dayBlock

func (t scheduleTable) set(day string, entries []Entry) scheduleTable {
	for i := range t {
		if t[i].Day == day {
			t[i].Entries = entries
			return t
		}
	}
	return append(t, dayBlock{Day: day, Entries: entries})
}

func (t *scheduleTable) UnmarshalYAML(node *yaml.Node) error {
	var out scheduleTable
	err := walkYAMLMapping(node, "days to classes", func(key string, value *yaml.Node) error {
		var entries []Entry
		if err := value.Decode(&entries); err != nil {
			return fmt.Errorf("schedule for %q: %w", key, err)
		}
		out = out.set(key, entries)
		return nil
	})
	if err != nil {
		return err
	}
	*t = out
	return nil
}

func (t *scheduleTable) UnmarshalJSON(data []byte) error {
	var out scheduleTable
	err := walkJSONObject(data, "days to classes", func(key string, dec *json.Decoder) error {
		var entries []Entry
		if err := dec.Decode(&entries); err != nil {
			return fmt.Errorf("schedule for %q: %w", key, err)
		}
		out = out.set(key, entries)
		return nil
	})
	if err != nil {
		return err
	}
	*t = out
	return nil
}

type document struct {
	Notes     Links         `yaml:"notes" json:"notes"`
	Books     Links         `yaml:"books" json:"books"`
	Syllabus  Links         `yaml:"syllabus" json:"syllabus"`
	Questions Links         `yaml:"questions" json:"questions"`
	Schedule  scheduleTable `yaml:"schedule" json:"schedule"`
	Notice    *string       `yaml:"notice" json:"notice"`
}

// decodeDocument reads JSON with encoding/json, since not every JSON escape
// is valid YAML, and anything else with yaml.v3.
func decodeDocument(data []byte) (document, error) {
	var doc document
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return doc, fmt.Errorf("%w: empty document", ErrConfig)
	}

	var err error
	switch trimmed[0] {
	case '{', '[':
		err = json.Unmarshal(trimmed, &doc)
	default:
		err = yaml.Unmarshal(trimmed, &doc)
	}
	if err != nil {
		return doc, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return doc, nil
}

func walkYAMLMapping(node *yaml.Node, what string, fn func(key string, value *yaml.Node) error) error {
	if node.ShortTag() == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of %s", node.Line, what)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func walkJSONObject(data []byte, what string, fn func(key string, dec *json.Decoder) error) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected an object of %s", what)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		if err := fn(key, dec); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
