// Package mimetypes names the content of a spooled job from its first bytes.
package mimetypes

import (
	"bytes"
	"mime"

	"github.com/gabriel-vasile/mimetype"
)

type MIME string

const (
	Unknown MIME = "application/octet-stream"

	ApplicationPostScript MIME = "application/postscript"
	ApplicationPDF        MIME = "application/pdf"
	ApplicationPJL        MIME = "application/vnd.hp-pjl"
	ApplicationPCL        MIME = "application/vnd.hp-pcl"
	ApplicationPCLXL      MIME = "application/vnd.hp-pclxl"
)

var (
	universalExit = []byte("\x1b%-12345X")
	pclReset      = []byte("\x1bE")
	pclXLHeader   = []byte(") HP-PCL XL")
	enterLanguage = []byte("ENTER LANGUAGE")
)

// Detect classifies the head of a print job. Printer languages unknown to
// mimetype are recognised first, a PJL envelope reports the language it
// switches to when the head says so.
func Detect(head []byte) MIME {
	if bytes.HasPrefix(head, universalExit) {
		return detectPJL(head[len(universalExit):])
	}
	if language, ok := detectPrinterLanguage(head); ok {
		return language
	}
	detected, _, err := mime.ParseMediaType(mimetype.Detect(head).String())
	if err != nil {
		return Unknown
	}
	return MIME(detected)
}

func detectPrinterLanguage(head []byte) (MIME, bool) {
	switch {
	case bytes.HasPrefix(head, []byte("%!")):
		return ApplicationPostScript, true
	case bytes.HasPrefix(head, []byte("%PDF-")):
		return ApplicationPDF, true
	case bytes.HasPrefix(head, pclXLHeader):
		return ApplicationPCLXL, true
	case bytes.HasPrefix(head, pclReset):
		return ApplicationPCL, true
	}
	return "", false
}

func detectPJL(body []byte) MIME {
	i := bytes.Index(body, enterLanguage)
	if i < 0 {
		return ApplicationPJL
	}
	line := body[i+len(enterLanguage):]
	if end := bytes.IndexByte(line, '\n'); end >= 0 {
		line = line[:end]
	}
	line = bytes.ToUpper(bytes.TrimLeft(line, " ="))
	switch {
	case bytes.HasPrefix(line, []byte("POSTSCRIPT")):
		return ApplicationPostScript
	case bytes.HasPrefix(line, []byte("PDF")):
		return ApplicationPDF
	case bytes.HasPrefix(line, []byte("PCLXL")):
		return ApplicationPCLXL
	case bytes.HasPrefix(line, []byte("PCL")):
		return ApplicationPCL
	}
	return ApplicationPJL
}
