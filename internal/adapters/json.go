package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/themetoggle/themetoggle/internal/models"
)

// JSONAdapter edits a top-level key of a JSON settings object, such as the
// editor's workbench.colorTheme. The key is an opaque member name, not a path.
//
// The file is edited as a syntax tree, so unrelated members keep their
// bytes, order and any comments.
type JSONAdapter struct{}

// NewJSONAdapter creates a JSON settings adapter.
func NewJSONAdapter() *JSONAdapter {
	return &JSONAdapter{}
}

// Kind implements Adapter.
func (a *JSONAdapter) Kind() models.AdapterKind {
	return models.AdapterKindJSON
}

// Apply sets SettingsKey to the theme name for mode, adding the member if
// missing. The value is written even when it is already correct.
func (a *JSONAdapter) Apply(ctx context.Context, desc models.Descriptor, mode models.ThemeMode) (string, error) {
	name := desc.NameFor(mode)
	err := editSettings(ctx, desc, func(data []byte) ([]byte, error) {
		return setMember(data, desc.SettingsKey, name)
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// Current returns the string stored under SettingsKey.
func (a *JSONAdapter) Current(ctx context.Context, desc models.Descriptor) (string, error) {
	data, err := readSettings(ctx, desc)
	if err != nil {
		return "", err
	}
	return LookupString(data, []string{desc.SettingsKey})
}

func parseObject(data []byte) (hujson.Value, *hujson.Object, error) {
	root, err := hujson.Parse(data)
	if err != nil {
		return hujson.Value{}, nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	obj, ok := root.Value.(*hujson.Object)
	if !ok {
		return hujson.Value{}, nil, fmt.Errorf("%w: top-level value is not an object", ErrParse)
	}
	return root, obj, nil
}

func setMember(data []byte, key, value string) ([]byte, error) {
	root, obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", value, err)
	}

	found := false
	for i := range obj.Members {
		if memberName(obj.Members[i]) == key {
			obj.Members[i].Value.Value = hujson.Literal(encoded)
			found = true
		}
	}
	if !found {
		obj.Members = append(obj.Members, newMember(obj, key, encoded))
	}
	return root.Pack(), nil
}

// newMember builds a member to append to obj, copying the indentation and
// name/value separator of the current last member and keeping its
// trailing-comma style. An empty object gets two-space indentation when it
// spans lines.
func newMember(obj *hujson.Object, key string, value []byte) hujson.ObjectMember {
	member := hujson.ObjectMember{
		Name:  hujson.Value{Value: hujson.String(key)},
		Value: hujson.Value{BeforeExtra: hujson.Extra(" "), Value: hujson.Literal(value)},
	}

	if len(obj.Members) == 0 {
		if bytes.ContainsRune(obj.AfterExtra, '\n') {
			member.Name.BeforeExtra = hujson.Extra("\n  ")
		}
		return member
	}

	last := obj.Members[len(obj.Members)-1]
	member.Name.BeforeExtra = hujson.Extra(" ")
	if indent := lineIndent(last.Name.BeforeExtra); indent != nil {
		member.Name.BeforeExtra = indent
	}
	if sep := last.Value.BeforeExtra; isInlineSpace(sep) && last.Name.AfterExtra == nil {
		member.Value.BeforeExtra = append(hujson.Extra(nil), sep...)
	}
	if last.Value.AfterExtra != nil {
		member.Value.AfterExtra = hujson.Extra{}
	}
	return member
}

// lineIndent returns the line break and indentation that end extra, or nil
// when extra holds no line break.
func lineIndent(extra hujson.Extra) hujson.Extra {
	i := bytes.LastIndexByte(extra, '\n')
	if i < 0 {
		return nil
	}
	if i > 0 && extra[i-1] == '\r' {
		i--
	}
	indent := extra[i:]
	if !isInlineSpace(bytes.TrimLeft(indent, "\r\n")) {
		return nil
	}
	return append(hujson.Extra(nil), indent...)
}

func isInlineSpace(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}

// LookupString walks path through nested objects and returns the string at
// its end. JSON with comments and trailing commas is accepted.
func LookupString(data []byte, path []string) (string, error) {
	_, obj, err := parseObject(data)
	if err != nil {
		return "", err
	}

	for i, segment := range path {
		member := findMember(obj, segment)
		if member == nil {
			return "", fmt.Errorf("%w: %q", ErrKeyNotFound, strings.Join(path[:i+1], "."))
		}
		if i == len(path)-1 {
			lit, ok := member.Value.Value.(hujson.Literal)
			if !ok {
				return "", fmt.Errorf("%w: %q is not a string", ErrKeyNotFound, segment)
			}
			var s string
			if err := json.Unmarshal(lit, &s); err != nil {
				return "", fmt.Errorf("%w: %q is not a string", ErrKeyNotFound, segment)
			}
			return s, nil
		}
		next, ok := member.Value.Value.(*hujson.Object)
		if !ok {
			return "", fmt.Errorf("%w: %q is not an object", ErrKeyNotFound, segment)
		}
		obj = next
	}
	return "", fmt.Errorf("%w: empty key", ErrKeyNotFound)
}

// findMember returns the last member named name, matching JSON's
// last-wins rule for duplicate keys.
func findMember(obj *hujson.Object, name string) *hujson.ObjectMember {
	var found *hujson.ObjectMember
	for i := range obj.Members {
		if memberName(obj.Members[i]) == name {
			found = &obj.Members[i]
		}
	}
	return found
}

func memberName(m hujson.ObjectMember) string {
	lit, ok := m.Name.Value.(hujson.Literal)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(lit, &s); err != nil {
		return ""
	}
	return s
}
