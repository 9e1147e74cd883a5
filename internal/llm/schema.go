package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is the JSON Schema an answer must satisfy. It is compiled on first
// use; share it by pointer.
type Schema struct {
	// Name is kebab-case, e.g. "word-insight". Anthropic receives it as the
	// tool name and OpenAI as the response format name.
	Name        string
	Description string
	Definition  map[string]any

	once     sync.Once
	raw      []byte
	compiled *jsonschema.Schema
	err      error
}

// Validate checks that body is JSON conforming to s. The same check guards
// provider answers and payloads read back from the insight cache.
func (s *Schema) Validate(body json.RawMessage) error {
	if err := s.compile(); err != nil {
		return malformed(body, "schema %q: %w", s.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return malformed(body, "not JSON: %w", err)
	}
	if err := s.compiled.Validate(doc); err != nil {
		return malformed(body, "does not match %s: %w", s.Name, err)
	}
	return nil
}

// JSON returns the definition encoded as a JSON document.
func (s *Schema) JSON() ([]byte, error) {
	if err := s.compile(); err != nil {
		return nil, err
	}
	return s.raw, nil
}

func (s *Schema) compile() error {
	s.once.Do(func() {
		// Round-trip through JSON: the compiler only understands decoded
		// values, not Go literals such as []string.
		s.raw, s.err = json.Marshal(s.Definition)
		if s.err != nil {
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(s.raw))
		if err != nil {
			s.err = err
			return
		}
		url := fmt.Sprintf("memoflow://%s.json", s.Name)
		c := jsonschema.NewCompiler()
		if s.err = c.AddResource(url, doc); s.err != nil {
			return
		}
		s.compiled, s.err = c.Compile(url)
	})
	return s.err
}

// objectParts splits an object schema into the pieces Anthropic's tool
// input_schema wants: properties, required names and any other keywords.
func (s *Schema) objectParts() (props any, required []string, extra map[string]any) {
	extra = map[string]any{}
	for k, v := range s.Definition {
		switch k {
		case "type":
		case "properties":
			props = v
		case "required":
			switch r := v.(type) {
			case []string:
				required = r
			case []any:
				for _, name := range r {
					if n, ok := name.(string); ok {
						required = append(required, n)
					}
				}
			}
		default:
			extra[k] = v
		}
	}
	return props, required, extra
}
