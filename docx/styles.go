package docx

import "encoding/xml"

// stylesXML represents the structure of word/styles.xml
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	Type    string            `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string            `xml:"styleId,attr"`
	Name    valXML            `xml:"name"`
	PPr     paragraphPropsXML `xml:"pPr"`
}

// relationshipsXML represents _rels/*.rels files
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	XMLNS         string            `xml:"xmlns,attr,omitempty"`
	Relationships []relationshipXML `xml:"Relationship"`
}

// relationshipXML represents a single relationship.
type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"` // External or empty (internal)
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata)
type corePropertiesXML struct {
	XMLName     xml.Name `xml:"coreProperties"`
	Title       string   `xml:"title"`
	Subject     string   `xml:"subject"`
	Creator     string   `xml:"creator"`
	Keywords    string   `xml:"keywords"`
	Description string   `xml:"description"`
	Created     string   `xml:"created"`
}

// appPropertiesXML represents docProps/app.xml
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Application string   `xml:"Application"`
}
