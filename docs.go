// File: envgrove/config/docs.go
package config

import (
	"fmt"
	"strings"
)

// Markdown renders a field reference table for the schema: key, declared
// type, default, secret flag. Nested schemas contribute rows under their
// composed key prefix, in declaration order.
func (s *Schema) Markdown() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s\n\n", s.name))
	b.WriteString("| Key | Type | Default | Secret |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	s.markdownRows(&b, "")
	return b.String()
}

func (s *Schema) markdownRows(b *strings.Builder, prefix string) {
	for _, f := range s.fields {
		if f.Type.Kind == KindNested {
			f.Nested.markdownRows(b, prefix+f.Prefix)
			continue
		}

		def := "required"
		if f.HasDefault {
			def = formatValue(f.Default)
		}
		secret := "No"
		if f.Secret {
			secret = "Yes"
		}
		b.WriteString(fmt.Sprintf("| `%s%s%s` | `%s` | `%s` | %s |\n",
			prefix, f.Prefix, f.Name, f.Type, def, secret))
	}
}

// Example renders a dotenv-style example file for the schema, preserving
// declaration order. Required fields are left empty with a marker comment;
// nested schemas get a section header.
func (s *Schema) Example() string {
	var lines []string
	s.exampleLines(&lines, "")
	return strings.Join(lines, "\n") + "\n"
}

func (s *Schema) exampleLines(lines *[]string, prefix string) {
	for _, f := range s.fields {
		if f.Type.Kind == KindNested {
			*lines = append(*lines, "", fmt.Sprintf("# --- %s ---", f.Name))
			f.Nested.exampleLines(lines, prefix+f.Prefix)
			continue
		}

		value := ""
		if f.HasDefault {
			value = formatValue(f.Default)
		}

		comment := fmt.Sprintf("  # type: %s", f.Type)
		if !f.HasDefault {
			comment += " | required"
		}
		if len(f.Choices) > 0 {
			comment += fmt.Sprintf(" | choices: %v", f.Choices)
		}

		*lines = append(*lines, fmt.Sprintf("%s%s%s=%s%s", prefix, f.Prefix, f.Name, value, comment))
	}
}

// formatValue renders a default so the example output re-parses through the
// sequence caster: every sequence kind joins with commas.
func formatValue(v any) string {
	if v == nil {
		return ""
	}
	switch s := v.(type) {
	case []string:
		return strings.Join(s, ",")
	case []int64:
		return joinElems(s)
	case []int:
		return joinElems(s)
	case []float64:
		return joinElems(s)
	case []bool:
		return joinElems(s)
	}
	return fmt.Sprintf("%v", v)
}

func joinElems[T any](elems []T) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = fmt.Sprintf("%v", e)
	}
	return strings.Join(parts, ",")
}
