package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"lessonplan/pkg/apperr"
)

const docxBody = "word/document.xml"

// FromDocx returns the raw text of a .docx file, one paragraph per line.
func FromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperr.Wrap(apperr.ErrValidation, "docx", "not a docx archive", err)
	}
	for _, f := range zr.File {
		if f.Name != docxBody {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", docxBody, err)
		}
		defer rc.Close()
		return paragraphs(rc)
	}
	return "", apperr.Wrap(apperr.ErrValidation, "docx", "missing "+docxBody, nil)
}

func paragraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		out    strings.Builder
		line   strings.Builder
		inText bool
	)
	flush := func() {
		out.WriteString(strings.TrimRight(line.String(), " \t"))
		out.WriteByte('\n')
		line.Reset()
	}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", apperr.Wrap(apperr.ErrValidation, "docx", "bad document xml", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				line.WriteByte('\t')
			case "br", "cr":
				line.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				flush()
			}
		case xml.CharData:
			if inText {
				line.Write(t)
			}
		}
	}
	if line.Len() > 0 {
		flush()
	}
	return strings.TrimSpace(out.String()), nil
}
