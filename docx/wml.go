package docx

import "encoding/xml"

// Writer-side WordprocessingML. Element and attribute names carry their
// namespace prefix literally, the prefixes being declared once on the root
// element.

type xDocument struct {
	XMLName  xml.Name `xml:"w:document"`
	XMLNSW   string   `xml:"xmlns:w,attr"`
	XMLNSR   string   `xml:"xmlns:r,attr"`
	XMLNSWP  string   `xml:"xmlns:wp,attr"`
	XMLNSA   string   `xml:"xmlns:a,attr"`
	XMLNSPic string   `xml:"xmlns:pic,attr"`
	Body     xBody    `xml:"w:body"`
}

// xBody holds paragraphs and tables in insertion order.
type xBody struct {
	Items  []any
	SectPr *xSectPr
}

// MarshalXML writes the mixed body children in order.
func (b xBody) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, item := range b.Items {
		var name string
		switch item.(type) {
		case *xParagraph:
			name = "w:p"
		case *xTable:
			name = "w:tbl"
		default:
			continue
		}
		if err := e.EncodeElement(item, xml.StartElement{Name: xml.Name{Local: name}}); err != nil {
			return err
		}
	}
	if b.SectPr != nil {
		if err := e.EncodeElement(b.SectPr, xml.StartElement{Name: xml.Name{Local: "w:sectPr"}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

type xVal struct {
	Val string `xml:"w:val,attr"`
}

// xOn is an empty toggle element such as <w:b/>.
type xOn struct{}

type xParagraph struct {
	PPr  *xPPr   `xml:"w:pPr,omitempty"`
	Runs []*xRun `xml:"w:r"`
}

type xPPr struct {
	Style   *xVal     `xml:"w:pStyle,omitempty"`
	NumPr   *xNumPr   `xml:"w:numPr,omitempty"`
	Spacing *xSpacing `xml:"w:spacing,omitempty"`
	Ind     *xInd     `xml:"w:ind,omitempty"`
	Jc      *xVal     `xml:"w:jc,omitempty"`
}

type xNumPr struct {
	Ilvl  xVal `xml:"w:ilvl"`
	NumID xVal `xml:"w:numId"`
}

type xSpacing struct {
	Before int `xml:"w:before,attr"`
	After  int `xml:"w:after,attr"`
}

type xInd struct {
	Left    int `xml:"w:left,attr"`
	Hanging int `xml:"w:hanging,attr,omitempty"`
}

type xRun struct {
	RPr     *xRPr     `xml:"w:rPr,omitempty"`
	Text    *xText    `xml:"w:t,omitempty"`
	Drawing *xDrawing `xml:"w:drawing,omitempty"`
}

type xRPr struct {
	Bold   *xOn `xml:"w:b,omitempty"`
	Italic *xOn `xml:"w:i,omitempty"`
}

type xText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type xDrawing struct {
	Inline xInline `xml:"wp:inline"`
}

type xInline struct {
	DistT   int             `xml:"distT,attr"`
	DistB   int             `xml:"distB,attr"`
	DistL   int             `xml:"distL,attr"`
	DistR   int             `xml:"distR,attr"`
	Extent  xExtent         `xml:"wp:extent"`
	Effect  xEffectExtent   `xml:"wp:effectExtent"`
	DocPr   xDocPr          `xml:"wp:docPr"`
	FramePr xGraphicFramePr `xml:"wp:cNvGraphicFramePr"`
	Graphic xGraphic        `xml:"a:graphic"`
}

type xExtent struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type xEffectExtent struct {
	L int `xml:"l,attr"`
	T int `xml:"t,attr"`
	R int `xml:"r,attr"`
	B int `xml:"b,attr"`
}

type xDocPr struct {
	ID    int    `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr,omitempty"`
}

type xGraphicFramePr struct {
	Locks xFrameLocks `xml:"a:graphicFrameLocks"`
}

type xFrameLocks struct {
	NoChangeAspect int `xml:"noChangeAspect,attr"`
}

type xGraphic struct {
	Data xGraphicData `xml:"a:graphicData"`
}

type xGraphicData struct {
	URI string `xml:"uri,attr"`
	Pic xPic   `xml:"pic:pic"`
}

type xPic struct {
	NvPicPr  xNvPicPr  `xml:"pic:nvPicPr"`
	BlipFill xBlipFill `xml:"pic:blipFill"`
	SpPr     xSpPr     `xml:"pic:spPr"`
}

type xNvPicPr struct {
	CNvPr    xDocPr   `xml:"pic:cNvPr"`
	CNvPicPr struct{} `xml:"pic:cNvPicPr"`
}

type xBlipFill struct {
	Blip    xBlip    `xml:"a:blip"`
	Stretch xStretch `xml:"a:stretch"`
}

type xBlip struct {
	Embed string `xml:"r:embed,attr"`
}

type xStretch struct {
	FillRect struct{} `xml:"a:fillRect"`
}

type xSpPr struct {
	Xfrm xXfrm     `xml:"a:xfrm"`
	Geom xPrstGeom `xml:"a:prstGeom"`
}

type xXfrm struct {
	Off xOff    `xml:"a:off"`
	Ext xExtent `xml:"a:ext"`
}

type xOff struct {
	X int `xml:"x,attr"`
	Y int `xml:"y,attr"`
}

type xPrstGeom struct {
	Prst  string   `xml:"prst,attr"`
	AvLst struct{} `xml:"a:avLst"`
}

type xTable struct {
	TblPr xTblPr   `xml:"w:tblPr"`
	Grid  xTblGrid `xml:"w:tblGrid"`
	Rows  []*xRow  `xml:"w:tr"`
}

type xTblPr struct {
	Style *xVal     `xml:"w:tblStyle,omitempty"`
	Width xTblWidth `xml:"w:tblW"`
	Look  xTblLook  `xml:"w:tblLook"`
}

type xTblWidth struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type xTblLook struct {
	Val      string `xml:"w:val,attr"`
	FirstRow int    `xml:"w:firstRow,attr"`
	LastRow  int    `xml:"w:lastRow,attr"`
	FirstCol int    `xml:"w:firstColumn,attr"`
	LastCol  int    `xml:"w:lastColumn,attr"`
	NoHBand  int    `xml:"w:noHBand,attr"`
	NoVBand  int    `xml:"w:noVBand,attr"`
}

type xTblGrid struct {
	Cols []xGridCol `xml:"w:gridCol"`
}

type xGridCol struct {
	W int `xml:"w:w,attr"`
}

type xRow struct {
	Cells []*xCell `xml:"w:tc"`
}

type xCell struct {
	TcPr       xTcPr         `xml:"w:tcPr"`
	Paragraphs []*xParagraph `xml:"w:p"`
}

type xTcPr struct {
	Width xTblWidth `xml:"w:tcW"`
}

type xSectPr struct {
	PgSz  xPgSz  `xml:"w:pgSz"`
	PgMar xPgMar `xml:"w:pgMar"`
}

type xPgSz struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type xPgMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}
