package object

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses every document of a YAML stream into an Object.
// Mappings become Records, sequences Arrays, numbers Numbers (".nan" is NaN)
// and "~" is NULL.
func DecodeYAML(content []byte) ([]Object, error) {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	m := NewMarshaller()
	var docs []Object
	for i := 0; ; i++ {
		var data interface{}
		err := dec.Decode(&data)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("YAML parse error in document %d: %w", i+1, err)
		}
		obj, err := m.ToValue(data)
		if err != nil {
			return nil, fmt.Errorf("YAML document %d: %w", i+1, err)
		}
		docs = append(docs, obj)
	}
	return docs, nil
}
