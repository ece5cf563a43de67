package asset

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// rpslPad aligns attribute values the way registry whois output does.
const rpslPad = 16

// DecodeRPSL parses a single AS-SET object in routing-policy text form.
// Attribute lines are "name: value"; lines starting with whitespace continue
// the previous attribute. The object must open with an as-set attribute.
func DecodeRPSL(data []byte) (*ASSet, error) {
	set := &ASSet{}
	attr := ""
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "%") || strings.HasPrefix(line, "#") {
			continue
		}

		var value string
		if line[0] == ' ' || line[0] == '\t' || line[0] == '+' {
			// continuation of the previous attribute
			value = strings.TrimSpace(strings.TrimPrefix(line, "+"))
		} else {
			name, rest, ok := strings.Cut(line, ":")
			if !ok {
				continue
			}
			attr = strings.ToLower(strings.TrimSpace(name))
			value = strings.TrimSpace(rest)
		}

		if set.Name == "" && attr != "as-set" {
			return nil, fmt.Errorf("not an as-set object: leads with %q", attr)
		}

		switch attr {
		case "as-set":
			set.Name = value
		case "descr":
			set.Description = joinValue(set.Description, value)
		case "admin-c":
			set.AdminC = value
		case "tech-c":
			set.TechC = value
		case "mnt-by":
			set.Maintainer = value
		case "source":
			set.Source = value
		case "remarks":
			if value != "" {
				set.Remarks = append(set.Remarks, value)
			}
		case "members":
			for _, name := range splitMembers(value) {
				set.Members = append(set.Members, NewMemberSpec(name))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading rpsl object: %w", err)
	}
	if set.Name == "" {
		return nil, fmt.Errorf("not an as-set object: no as-set attribute found")
	}
	return set, nil
}

// EncodeRPSL renders the object in routing-policy text form. Expansion
// annotations have no RPSL representation and are dropped; only member names
// survive the conversion.
func EncodeRPSL(set *ASSet) []byte {
	var b strings.Builder
	writeAttr(&b, "as-set", set.Name)
	writeAttr(&b, "descr", set.Description)
	if names := set.MemberNames(); len(names) > 0 {
		writeAttr(&b, "members", strings.Join(names, ", "))
	}
	writeAttr(&b, "admin-c", set.AdminC)
	writeAttr(&b, "tech-c", set.TechC)
	for _, remark := range set.Remarks {
		writeAttr(&b, "remarks", remark)
	}
	writeAttr(&b, "mnt-by", set.Maintainer)
	writeAttr(&b, "source", set.Source)
	return []byte(b.String())
}

func writeAttr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(name + ":")
	for pad := len(name) + 1; pad < rpslPad; pad++ {
		b.WriteByte(' ')
	}
	b.WriteString(value + "\n")
}

func joinValue(existing, value string) string {
	if existing == "" {
		return value
	}
	return existing + " " + value
}

func splitMembers(value string) []string {
	var names []string
	for _, field := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	}) {
		if field != "" {
			names = append(names, field)
		}
	}
	return names
}
