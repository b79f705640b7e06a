package docx

import "encoding/xml"

// XML namespaces used in DOCX files
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsDC  = "http://purl.org/dc/elements/1.1/"
	nsCP  = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
)

// The types below decode word/document.xml. Tags use local names only so
// they match regardless of the namespace prefix a producer chose.

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	XMLName    xml.Name          `xml:"p"`
	Properties paragraphPropsXML `xml:"pPr"`
	Runs       []runXML          `xml:"r"`
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style         valXML    `xml:"pStyle"`
	Justification valXML    `xml:"jc"`
	Indent        indentXML `xml:"ind"`
	OutlineLvl    valXML    `xml:"outlineLvl"`
}

// valXML represents any element carrying a single w:val attribute.
type valXML struct {
	Val string `xml:"val,attr"`
}

// indentXML represents paragraph indentation.
type indentXML struct {
	Left    string `xml:"left,attr"`
	Hanging string `xml:"hanging,attr"`
}

// runXML represents a text run (<w:r>).
type runXML struct {
	XMLName    xml.Name     `xml:"r"`
	Properties runPropsXML  `xml:"rPr"`
	Text       []textXML    `xml:"t"`
	Tabs       []tabXML     `xml:"tab"`
	Breaks     []breakXML   `xml:"br"`
	Drawing    []drawingXML `xml:"drawing"`
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Bold   boolXML `xml:"b"`
	Italic boolXML `xml:"i"`
}

// boolXML represents a boolean toggle such as <w:b/> or <w:b w:val="0"/>.
type boolXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// on reports whether the toggle is present and not switched off.
func (b boolXML) on() bool {
	if b.XMLName.Local == "" {
		return false
	}
	switch b.Val {
	case "false", "0", "off":
		return false
	}
	return true
}

// textXML represents text content (<w:t>).
type textXML struct {
	Value string `xml:",chardata"`
}

// tabXML represents a tab character.
type tabXML struct{}

// breakXML represents a break (line or page).
type breakXML struct {
	Type string `xml:"type,attr"` // page, column, textWrapping
}

// drawingXML represents an embedded drawing/image.
type drawingXML struct {
	Inline *inlineXML `xml:"inline"`
	Anchor *inlineXML `xml:"anchor"`
}

// inlineXML represents an inline or anchored image.
type inlineXML struct {
	Extent extentXML `xml:"extent"`
	DocPr  docPrXML  `xml:"docPr"`
	Blip   *blipXML  `xml:"graphic>graphicData>pic>blipFill>blip"`
}

// extentXML represents image dimensions.
type extentXML struct {
	CX string `xml:"cx,attr"` // Width in EMUs
	CY string `xml:"cy,attr"` // Height in EMUs
}

// docPrXML represents document properties of an image.
type docPrXML struct {
	ID    string `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr"` // Alt text
}

// blipXML represents an image reference.
type blipXML struct {
	Embed string `xml:"embed,attr"` // Relationship ID
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	XMLName    xml.Name      `xml:"tbl"`
	Properties tablePropsXML `xml:"tblPr"`
	Rows       []tableRowXML `xml:"tr"`
}

// tablePropsXML represents table properties.
type tablePropsXML struct {
	Style valXML `xml:"tblStyle"`
}

// tableRowXML represents a table row (<w:tr>).
type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

// tableCellXML represents a table cell (<w:tc>).
type tableCellXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}
