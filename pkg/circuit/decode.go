package circuit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUnsupportedDocument is returned when the input is neither a circuit-json
// array nor a document object
var ErrUnsupportedDocument = errors.New("unsupported circuit document")

// Document is a decoded set of circuit elements with optional connectivity
type Document struct {
	Elements     []Element
	Connectivity *ConnectivityMap
}

type documentObject struct {
	Elements     []json.RawMessage `json:"elements"`
	Connectivity *ConnectivityMap  `json:"connectivity"`
}

// ParseFile reads and decodes a circuit-json file
func ParseFile(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads either a bare circuit-json array or an object of the form
// {"elements": [...], "connectivity": {"net": ["id", ...]}}
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrUnsupportedDocument)
	}

	var raws []json.RawMessage
	conn := NewConnectivityMap()

	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("failed to decode element array: %w", err)
		}
	case '{':
		var obj documentObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		raws = obj.Elements
		if obj.Connectivity != nil {
			conn = obj.Connectivity
		}
	default:
		return nil, fmt.Errorf("%w: expected '[' or '{', got %q", ErrUnsupportedDocument, trimmed[0])
	}

	doc := &Document{Connectivity: conn}
	for i, raw := range raws {
		el, err := DecodeElement(raw)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		doc.Elements = append(doc.Elements, el)
	}
	return doc, nil
}

// DecodeElement decodes one circuit-json element, choosing the Go type from
// its "type" tag. Unrecognized tags decode to Unknown.
func DecodeElement(raw json.RawMessage) (Element, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("failed to read element type: %w", err)
	}

	switch Kind(head.Type) {
	case KindPlatedHole:
		return decodeAs[PlatedHole](raw)
	case KindSMTPad:
		return decodeAs[SMTPad](raw)
	case KindVia:
		return decodeAs[Via](raw)
	case KindCopperPour:
		return decodeAs[CopperPour](raw)
	case KindBrepShape:
		return decodeAs[BrepShape](raw)
	default:
		return Unknown{Type: head.Type, Raw: append([]byte(nil), raw...)}, nil
	}
}

func decodeAs[T Element](raw json.RawMessage) (Element, error) {
	var el T
	if err := json.Unmarshal(raw, &el); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", el.Kind(), err)
	}
	return el, nil
}

// objectKeys returns the keys of a JSON object in document order
func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
