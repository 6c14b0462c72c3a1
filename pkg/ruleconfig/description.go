package ruleconfig

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueKind is the type of an option value.
type ValueKind int

const (
	KindFlag ValueKind = iota
	KindString
	KindSymbol
	KindInteger
	KindFloat
	KindSeverity
	KindList
	KindNested
)

// Value is a described option value.
type Value struct {
	Kind   ValueKind
	Flag   bool
	Text   string // string, symbol and severity
	Int    int
	Float  float64
	List   []Value
	Nested Description
}

// Option is one key of a description.
type Option struct {
	Key   string
	Value Value
}

// Description is the ordered, human-readable form of a rule configuration.
type Description struct {
	Options []Option
}

// Value constructors.

func FlagValue(v bool) Value          { return Value{Kind: KindFlag, Flag: v} }
func StringValue(v string) Value      { return Value{Kind: KindString, Text: v} }
func SymbolValue(v string) Value      { return Value{Kind: KindSymbol, Text: v} }
func IntValue(v int) Value            { return Value{Kind: KindInteger, Int: v} }
func FloatValue(v float64) Value      { return Value{Kind: KindFloat, Float: v} }
func SeverityValue(v string) Value    { return Value{Kind: KindSeverity, Text: v} }
func ListValue(v ...Value) Value      { return Value{Kind: KindList, List: v} }
func NestedValue(d Description) Value { return Value{Kind: KindNested, Nested: d} }
func StringsValue(vs []string) Value  { return listOf(vs, StringValue) }
func SymbolsValue(vs []string) Value  { return listOf(vs, SymbolValue) }

func listOf(vs []string, mk func(string) Value) Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = mk(v)
	}
	return ListValue(out...)
}

// IsEmpty reports whether the description has no options.
func (d Description) IsEmpty() bool {
	return len(d.Options) == 0
}

// Add appends an option.
func (d *Description) Add(key string, v Value) {
	d.Options = append(d.Options, Option{Key: key, Value: v})
}

// OneLiner renders "key: value; key: value".
func (d Description) OneLiner() string {
	parts := make([]string, len(d.Options))
	for i, o := range d.Options {
		parts[i] = o.Key + ": " + o.Value.oneLiner()
	}
	return strings.Join(parts, "; ")
}

// Markdown renders an HTML table suitable for Markdown documents.
// Nested descriptions become nested tables.
func (d Description) Markdown() string {
	if d.IsEmpty() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<table>\n<thead>\n<tr><th>Key</th><th>Value</th></tr>\n</thead>\n<tbody>\n")
	for i, o := range d.Options {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "<tr>\n<td>\n%s\n</td>\n<td>\n%s\n</td>\n</tr>", o.Key, o.Value.markdown())
	}
	sb.WriteString("\n</tbody>\n</table>")
	return sb.String()
}

// YAML renders the description as a YAML mapping keyed by option.
func (d Description) YAML() (string, error) {
	out, err := yaml.Marshal(d.yamlNode())
	if err != nil {
		return "", fmt.Errorf("encode description: %w", err)
	}
	return string(out), nil
}

// Map returns the description in the shape configuration files use.
func (d Description) Map() map[string]any {
	out := make(map[string]any, len(d.Options))
	for _, o := range d.Options {
		out[o.Key] = o.Value.raw()
	}
	return out
}

func (v Value) raw() any {
	switch v.Kind {
	case KindFlag:
		return v.Flag
	case KindInteger:
		return v.Int
	case KindFloat:
		return v.Float
	case KindList:
		out := make([]any, len(v.List))
		for i, item := range v.List {
			out[i] = item.raw()
		}
		return out
	case KindNested:
		return v.Nested.Map()
	default:
		return v.Text
	}
}

func (d Description) yamlNode() *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, o := range d.Options {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: o.Key},
			o.Value.yamlNode())
	}
	return node
}

func (v Value) oneLiner() string {
	switch v.Kind {
	case KindString:
		return `"` + v.Text + `"`
	case KindList:
		return "[" + v.joinList(Value.oneLiner) + "]"
	case KindNested:
		return v.Nested.OneLiner()
	default:
		return v.scalar()
	}
}

func (v Value) markdown() string {
	switch v.Kind {
	case KindString:
		return "&quot;" + v.Text + "&quot;"
	case KindList:
		return "[" + v.joinList(Value.markdown) + "]"
	case KindNested:
		return v.Nested.Markdown()
	default:
		return v.scalar()
	}
}

func (v Value) joinList(render func(Value) string) string {
	parts := make([]string, len(v.List))
	for i, item := range v.List {
		parts[i] = render(item)
	}
	return strings.Join(parts, ", ")
}

func (v Value) scalar() string {
	switch v.Kind {
	case KindFlag:
		return strconv.FormatBool(v.Flag)
	case KindInteger:
		return strconv.Itoa(v.Int)
	case KindFloat:
		s := strconv.FormatFloat(v.Float, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	default:
		return v.Text
	}
}

func (v Value) yamlNode() *yaml.Node {
	switch v.Kind {
	case KindList:
		node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, item := range v.List {
			node.Content = append(node.Content, item.yamlNode())
		}
		return node
	case KindNested:
		return v.Nested.yamlNode()
	case KindFlag:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v.scalar()}
	case KindInteger:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v.scalar()}
	case KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: v.scalar()}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Text, Style: yaml.DoubleQuotedStyle}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Text}
	}
}
