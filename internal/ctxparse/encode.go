package ctxparse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// EncodeJSON writes n as a single line of JSON with ", " and ": "
// separators. Mapping order is kept and non-ASCII text is written as is.
func EncodeJSON(n *yaml.Node) (string, error) {
	var b strings.Builder
	if err := encode(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

func encode(b *strings.Builder, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			b.WriteString("null")
			return nil
		}
		return encode(b, n.Content[0])
	case yaml.MappingNode:
		b.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				b.WriteString(", ")
			}
			writeString(b, n.Content[i].Value)
			b.WriteString(": ")
			if err := encode(b, n.Content[i+1]); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	case yaml.SequenceNode:
		b.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := encode(b, c); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case yaml.AliasNode:
		if n.Alias == nil {
			return fmt.Errorf("alias %q has no target", n.Value)
		}
		return encode(b, n.Alias)
	case yaml.ScalarNode:
		writeScalar(b, n)
	default:
		return fmt.Errorf("unsupported node kind %v", n.Kind)
	}
	return nil
}

func writeScalar(b *strings.Builder, n *yaml.Node) {
	switch n.ShortTag() {
	case "!!int", "!!float":
		if json.Valid([]byte(n.Value)) {
			b.WriteString(n.Value)
			return
		}
	case "!!bool":
		b.WriteString(strings.ToLower(n.Value))
		return
	case "!!null":
		b.WriteString("null")
		return
	}
	writeString(b, n.Value)
}

func writeString(b *strings.Builder, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode
	b.Write(bytes.TrimRight(buf.Bytes(), "\n"))
}
