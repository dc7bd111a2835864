package doxygen

import (
	"encoding/xml"
	"strings"
)

// flatText decodes a mixed-content element into the concatenation of all its
// character data, at any nesting depth. Doxygen interleaves markup such as
// <ref> inside <type> and description nodes; only the text matters here.
type flatText string

func (t *flatText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case xml.CharData:
			b.Write(v)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	*t = flatText(b.String())
	return nil
}

func (t flatText) trimmed() string {
	return strings.TrimSpace(string(t))
}

// indexDoc is the table of contents: one entry per compound unit.
type indexDoc struct {
	XMLName   xml.Name        `xml:"doxygenindex"`
	Compounds []indexCompound `xml:"compound"`
}

type indexCompound struct {
	RefID string `xml:"refid,attr"`
	Kind  string `xml:"kind,attr"`
	Name  string `xml:"name"`
}

// compoundDoc is the root of one detail file.
type compoundDoc struct {
	XMLName   xml.Name      `xml:"doxygen"`
	Compounds []compoundDef `xml:"compounddef"`
}

type compoundDef struct {
	ID        string             `xml:"id,attr"`
	Kind      string             `xml:"kind,attr"`
	Prot      string             `xml:"prot,attr"`
	Name      string             `xml:"compoundname"`
	Templates *templateParamList `xml:"templateparamlist"`
	Brief     flatText           `xml:"briefdescription"`
	Detailed  flatText           `xml:"detaileddescription"`
	Sections  []sectionDef       `xml:"sectiondef"`
	Location  *locationAttr      `xml:"location"`
}

type sectionDef struct {
	Kind    string      `xml:"kind,attr"`
	Members []memberDef `xml:"memberdef"`
}

type memberDef struct {
	Kind      string             `xml:"kind,attr"`
	Prot      string             `xml:"prot,attr"`
	Static    string             `xml:"static,attr"`
	Const     string             `xml:"const,attr"`
	Virt      string             `xml:"virt,attr"`
	Name      string             `xml:"name"`
	Type      flatText           `xml:"type"`
	Templates *templateParamList `xml:"templateparamlist"`
	Params    []paramDef         `xml:"param"`
	Brief     flatText           `xml:"briefdescription"`
	Detailed  flatText           `xml:"detaileddescription"`
	Location  *locationAttr      `xml:"location"`
}

type paramDef struct {
	Type     flatText `xml:"type"`
	DeclName string   `xml:"declname"`
	DefVal   flatText `xml:"defval"`
}

type templateParamList struct {
	Params []paramDef `xml:"param"`
}

type locationAttr struct {
	File string `xml:"file,attr"`
}
