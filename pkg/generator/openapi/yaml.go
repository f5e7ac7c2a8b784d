package openapi

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// jsonToYAML re-emits a JSON document as block-style YAML. Parsing JSON into
// a node tree keeps key order; clearing the flow styles lets the emitter
// quote and indent every scalar correctly.
func jsonToYAML(data []byte) ([]byte, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse JSON document: %w", err)
	}
	clearStyle(&root)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
