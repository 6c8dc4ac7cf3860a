package stapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultContentPath selects the record array of a service response.
const DefaultContentPath = "$.content"

var messagePaths = []string{"$.message", "$.error", "$.detail"}

// decodeContent selects the records at contentPath and decodes them into out,
// which must point to a slice.
func decodeContent(body []byte, contentPath string, out any) error {
	if members, ok := memberPath(contentPath); ok {
		raw, err := selectRaw(body, members)
		if err != nil {
			return fmt.Errorf("jsonpath %s: %w", contentPath, err)
		}
		return json.Unmarshal(raw, out)
	}

	// expression paths go through a generic document; object member order
	// inside the records is not kept
	doc, err := parseJSON(body)
	if err != nil {
		return fmt.Errorf("response body is not valid JSON: %w", err)
	}

	val, err := jsonpath.Get(contentPath, doc)
	if err != nil {
		return fmt.Errorf("jsonpath %s: %w", contentPath, err)
	}
	if _, ok := val.([]any); !ok {
		return fmt.Errorf("jsonpath %s: expected an array, got %T", contentPath, val)
	}

	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// memberPath splits a plain member chain such as $.content or $.data.classes.
// Any other JSONPath expression reports false.
func memberPath(path string) ([]string, bool) {
	if path == "$" {
		return nil, true
	}
	rest, ok := strings.CutPrefix(path, "$.")
	if !ok {
		return nil, false
	}
	members := strings.Split(rest, ".")
	for _, m := range members {
		if m == "" || strings.ContainsAny(m, "[]*()?@$'\" ") {
			return nil, false
		}
	}
	return members, true
}

// selectRaw walks members without re-encoding, so the selected array keeps
// its bytes as sent.
func selectRaw(body []byte, members []string) (json.RawMessage, error) {
	cur := json.RawMessage(body)
	for _, m := range members {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(cur, &obj); err != nil {
			return nil, fmt.Errorf("response body is not a JSON object at %q: %w", m, err)
		}
		next, ok := obj[m]
		if !ok {
			return nil, fmt.Errorf("unknown key %s", m)
		}
		cur = next
	}
	if t := bytes.TrimSpace(cur); len(t) == 0 || t[0] != '[' {
		return nil, errors.New("expected an array")
	}
	return cur, nil
}

// errorMessage extracts a human-readable message from an error body, if any.
func errorMessage(body []byte) string {
	doc, err := parseJSON(body)
	if err != nil {
		s := strings.TrimSpace(string(body))
		if len(s) > 200 {
			s = s[:200]
		}
		return s
	}
	for _, p := range messagePaths {
		val, err := jsonpath.Get(p, doc)
		if err != nil {
			continue
		}
		if s, ok := val.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func parseJSON(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
