package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tsawler/md2docx/model"
)

const (
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsExtended      = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsDocPropsVT    = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	nsDCTerms       = "http://purl.org/dc/terms/"
	nsDCMIType      = "http://purl.org/dc/dcmitype/"
	nsXSI           = "http://www.w3.org/2001/XMLSchema-instance"

	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relTypeNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	relTypeSettings       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"
	relTypeImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	ctRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ctDocument      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles        = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctNumbering     = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
	ctSettings      = "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"
	ctCoreProps     = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtended      = "application/vnd.openxmlformats-officedocument.extended-properties+xml"

	graphicDataPicture = "http://schemas.openxmlformats.org/drawingml/2006/picture"

	// Style IDs written to styles.xml
	styleNormal      = "Normal"
	styleListBullet  = "ListBullet"
	styleListBullet2 = "ListBullet2"

	// bulletNumID is the numbering instance behind both bullet styles.
	bulletNumID = 1

	applicationName = "md2docx"
)

type xTypes struct {
	XMLName   xml.Name    `xml:"Types"`
	XMLNS     string      `xml:"xmlns,attr"`
	Defaults  []xDefault  `xml:"Default"`
	Overrides []xOverride `xml:"Override"`
}

type xDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// contentTypesPart lists the fixed parts plus one default per media
// extension in use.
func contentTypesPart(media map[string]string) xTypes {
	t := xTypes{
		XMLNS: nsContentTypes,
		Defaults: []xDefault{
			{Extension: "rels", ContentType: ctRelationships},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []xOverride{
			{PartName: "/word/document.xml", ContentType: ctDocument},
			{PartName: "/word/styles.xml", ContentType: ctStyles},
			{PartName: "/word/numbering.xml", ContentType: ctNumbering},
			{PartName: "/word/settings.xml", ContentType: ctSettings},
			{PartName: "/docProps/core.xml", ContentType: ctCoreProps},
			{PartName: "/docProps/app.xml", ContentType: ctExtended},
		},
	}
	for _, ext := range sortedKeys(media) {
		t.Defaults = append(t.Defaults, xDefault{Extension: ext, ContentType: media[ext]})
	}
	return t
}

func packageRelsPart() relationshipsXML {
	return relationshipsXML{
		XMLNS: nsRelationships,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: relTypeOfficeDocument, Target: "word/document.xml"},
			{ID: "rId2", Type: relTypeCoreProps, Target: "docProps/core.xml"},
			{ID: "rId3", Type: relTypeExtendedProps, Target: "docProps/app.xml"},
		},
	}
}

// documentRels returns the fixed relationships of word/document.xml.
// Image relationships are appended after these.
func documentRels() []relationshipXML {
	return []relationshipXML{
		{ID: "rId1", Type: relTypeStyles, Target: "styles.xml"},
		{ID: "rId2", Type: relTypeNumbering, Target: "numbering.xml"},
		{ID: "rId3", Type: relTypeSettings, Target: "settings.xml"},
	}
}

type xCoreProps struct {
	XMLName     xml.Name `xml:"cp:coreProperties"`
	XMLNSCP     string   `xml:"xmlns:cp,attr"`
	XMLNSDC     string   `xml:"xmlns:dc,attr"`
	XMLNSDCT    string   `xml:"xmlns:dcterms,attr"`
	XMLNSDCMI   string   `xml:"xmlns:dcmitype,attr"`
	XMLNSXSI    string   `xml:"xmlns:xsi,attr"`
	Title       string   `xml:"dc:title,omitempty"`
	Subject     string   `xml:"dc:subject,omitempty"`
	Creator     string   `xml:"dc:creator,omitempty"`
	Keywords    string   `xml:"cp:keywords,omitempty"`
	Description string   `xml:"dc:description,omitempty"`
	Created     xW3CDate `xml:"dcterms:created"`
	Modified    xW3CDate `xml:"dcterms:modified"`
}

type xW3CDate struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

func corePropsPart(meta model.Metadata, created time.Time) xCoreProps {
	stamp := xW3CDate{Type: "dcterms:W3CDTF", Value: created.UTC().Format(time.RFC3339)}
	return xCoreProps{
		XMLNSCP:     nsCP,
		XMLNSDC:     nsDC,
		XMLNSDCT:    nsDCTerms,
		XMLNSDCMI:   nsDCMIType,
		XMLNSXSI:    nsXSI,
		Title:       meta.Title,
		Subject:     meta.Subject,
		Creator:     meta.Author,
		Keywords:    strings.Join(meta.Keywords, ", "),
		Description: meta.Description,
		Created:     stamp,
		Modified:    stamp,
	}
}

type xAppProps struct {
	XMLName     xml.Name `xml:"Properties"`
	XMLNS       string   `xml:"xmlns,attr"`
	XMLNSVT     string   `xml:"xmlns:vt,attr"`
	Application string   `xml:"Application"`
}

func appPropsPart() xAppProps {
	return xAppProps{XMLNS: nsExtended, XMLNSVT: nsDocPropsVT, Application: applicationName}
}

// stylesPart renders word/styles.xml for the given font settings.
func stylesPart(opts Options) []byte {
	var buf bytes.Buffer
	font := escapeAttr(opts.FontName)
	table := escapeAttr(opts.TableStyle)

	fmt.Fprintf(&buf, `<w:styles xmlns:w="%s">`, nsW)
	fmt.Fprintf(&buf, `<w:docDefaults><w:rPrDefault><w:rPr>`+
		`<w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:eastAsia="%[1]s" w:cs="%[1]s"/>`+
		`<w:sz w:val="%[2]d"/><w:szCs w:val="%[2]d"/><w:lang w:val="en-US" w:eastAsia="ko-KR"/>`+
		`</w:rPr></w:rPrDefault><w:pPrDefault><w:pPr><w:spacing w:after="%[3]d"/></w:pPr></w:pPrDefault></w:docDefaults>`,
		font, opts.FontSize.HalfPoints(), paragraphSpaceAfter.Twips())

	buf.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>`)

	for i, size := range headingSizes {
		fmt.Fprintf(&buf, `<w:style w:type="paragraph" w:styleId="Heading%[1]d">`+
			`<w:name w:val="heading %[1]d"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>`+
			`<w:pPr><w:keepNext/><w:outlineLvl w:val="%[2]d"/></w:pPr>`+
			`<w:rPr><w:b/><w:bCs/><w:color w:val="%[3]s"/><w:sz w:val="%[4]d"/><w:szCs w:val="%[4]d"/></w:rPr></w:style>`,
			i+1, i, headingColor, size.HalfPoints())
	}

	for i, b := range bulletStyles {
		fmt.Fprintf(&buf, `<w:style w:type="paragraph" w:styleId="%[1]s">`+
			`<w:name w:val="%[2]s"/><w:basedOn w:val="Normal"/><w:qFormat/>`+
			`<w:pPr><w:numPr><w:ilvl w:val="%[3]d"/><w:numId w:val="%[4]d"/></w:numPr>`+
			`<w:ind w:left="%[5]d" w:hanging="%[6]d"/></w:pPr></w:style>`,
			b.id, b.name, i, bulletNumID, b.left.Twips(), bulletHanging.Twips())
	}

	buf.WriteString(`<w:style w:type="table" w:default="1" w:styleId="TableNormal"><w:name w:val="Normal Table"/>` +
		`<w:tblPr><w:tblInd w:w="0" w:type="dxa"/><w:tblCellMar><w:top w:w="0" w:type="dxa"/>` +
		`<w:left w:w="108" w:type="dxa"/><w:bottom w:w="0" w:type="dxa"/><w:right w:w="108" w:type="dxa"/>` +
		`</w:tblCellMar></w:tblPr></w:style>`)

	if table != "" {
		fmt.Fprintf(&buf, `<w:style w:type="table" w:styleId="%[1]s"><w:name w:val="%[1]s"/><w:basedOn w:val="TableNormal"/>`+
			`<w:pPr><w:spacing w:after="0"/></w:pPr>`+
			`<w:tblPr><w:tblBorders>`+
			`<w:top w:val="single" w:sz="8" w:space="0" w:color="4F81BD"/>`+
			`<w:left w:val="single" w:sz="8" w:space="0" w:color="4F81BD"/>`+
			`<w:bottom w:val="single" w:sz="8" w:space="0" w:color="4F81BD"/>`+
			`<w:right w:val="single" w:sz="8" w:space="0" w:color="4F81BD"/>`+
			`<w:insideH w:val="single" w:sz="8" w:space="0" w:color="4F81BD"/>`+
			`<w:insideV w:val="single" w:sz="8" w:space="0" w:color="4F81BD"/>`+
			`</w:tblBorders></w:tblPr>`+
			`<w:tblStylePr w:type="firstRow"><w:rPr><w:b/><w:bCs/></w:rPr>`+
			`<w:tcPr><w:tcBorders><w:bottom w:val="single" w:sz="18" w:space="0" w:color="4F81BD"/></w:tcBorders></w:tcPr>`+
			`</w:tblStylePr></w:style>`, table)
	}

	buf.WriteString(`</w:styles>`)
	return buf.Bytes()
}

// numberingPart defines one bullet list with two levels, one per bullet
// style.
func numberingPart() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<w:numbering xmlns:w="%s"><w:abstractNum w:abstractNumId="0">`+
		`<w:multiLevelType w:val="hybridMultilevel"/>`, nsW)
	glyphs := []string{"•", "◦"}
	for i, b := range bulletStyles {
		fmt.Fprintf(&buf, `<w:lvl w:ilvl="%[1]d"><w:start w:val="1"/><w:numFmt w:val="bullet"/>`+
			`<w:pStyle w:val="%[2]s"/><w:lvlText w:val="%[3]s"/><w:lvlJc w:val="left"/>`+
			`<w:pPr><w:ind w:left="%[4]d" w:hanging="%[5]d"/></w:pPr></w:lvl>`,
			i, b.id, glyphs[i], b.left.Twips(), bulletHanging.Twips())
	}
	fmt.Fprintf(&buf, `</w:abstractNum><w:num w:numId="%d"><w:abstractNumId w:val="0"/></w:num></w:numbering>`, bulletNumID)
	return buf.Bytes()
}

func settingsPart() []byte {
	return []byte(fmt.Sprintf(`<w:settings xmlns:w="%s"><w:zoom w:percent="100"/>`+
		`<w:defaultTabStop w:val="720"/><w:characterSpacingControl w:val="doNotCompress"/>`+
		`<w:compat><w:compatSetting w:name="compatibilityMode" w:uri="http://schemas.microsoft.com/office/word" w:val="15"/></w:compat>`+
		`</w:settings>`, nsW))
}

// escapeAttr escapes s for use inside a double-quoted attribute.
func escapeAttr(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
