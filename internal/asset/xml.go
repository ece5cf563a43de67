package asset

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// regRWSNamespace is the Reg-RWS payload namespace the registry API expects.
const regRWSNamespace = "http://www.arin.net/regrws/core/v1"

// xmlASSet mirrors the registry's structured markup payload. The xmlns
// attribute is written on encode and ignored on decode so payloads from
// namespace-less test fixtures still parse.
type xmlASSet struct {
	XMLName     xml.Name `xml:"asSet"`
	Namespace   string   `xml:"xmlns,attr,omitempty"`
	Name        string   `xml:"name"`
	Description string   `xml:"description,omitempty"`
	AdminC      string   `xml:"adminHandle,omitempty"`
	TechC       string   `xml:"techHandle,omitempty"`
	Maintainer  string   `xml:"maintainer,omitempty"`
	Source      string   `xml:"source,omitempty"`
	Remarks     []string `xml:"remarks>remark,omitempty"`
	Members     []string `xml:"members>member"`
}

// DecodeXML parses the registry's structured markup form.
func DecodeXML(data []byte) (*ASSet, error) {
	var obj xmlASSet
	if err := xml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("invalid asSet payload: %w", err)
	}
	name := strings.TrimSpace(obj.Name)
	if name == "" {
		return nil, fmt.Errorf("invalid asSet payload: missing name")
	}
	set := &ASSet{
		Name:        name,
		Description: obj.Description,
		AdminC:      obj.AdminC,
		TechC:       obj.TechC,
		Maintainer:  obj.Maintainer,
		Source:      obj.Source,
		Remarks:     obj.Remarks,
	}
	for _, member := range obj.Members {
		if member = strings.TrimSpace(member); member != "" {
			set.Members = append(set.Members, NewMemberSpec(member))
		}
	}
	return set, nil
}

// EncodeXML renders the object as a registry API payload. As with RPSL,
// expansion annotations are a configuration-format concern and are dropped.
func EncodeXML(set *ASSet) ([]byte, error) {
	obj := xmlASSet{
		Namespace:   regRWSNamespace,
		Name:        set.Name,
		Description: set.Description,
		AdminC:      set.AdminC,
		TechC:       set.TechC,
		Maintainer:  set.Maintainer,
		Source:      set.Source,
		Remarks:     set.Remarks,
		Members:     set.MemberNames(),
	}
	out, err := xml.MarshalIndent(&obj, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding as-set %s: %w", set.Name, err)
	}
	return append(out, '\n'), nil
}
