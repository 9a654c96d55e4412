package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// Document type codes accepted by the Clientes and Empleados tables.
const (
	DocVenezolano = "V"
	DocExtranjero = "E"
	DocGobierno   = "G"
	DocJuridico   = "J"
)

// IdentityDocument is a cedula/RIF split into its type letter and number.
type IdentityDocument struct {
	Type   string
	Number int64
}

func (d IdentityDocument) String() string {
	return d.Type + "-" + strconv.FormatInt(d.Number, 10)
}

// ParseIdentityDocument splits free text such as "V12345", "e-8.123.456"
// or "12345" into a document. It never fails: a missing or unknown letter
// yields V and missing or unparseable digits yield 0.
func ParseIdentityDocument(text string) IdentityDocument {
	doc := IdentityDocument{Type: DocVenezolano}

	s := strings.TrimSpace(text)
	if s == "" {
		return doc
	}

	if first := unicode.ToUpper(rune(s[0])); isDocType(first) {
		doc.Type = string(first)
		s = s[1:]
	}

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return doc
	}

	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return doc
	}
	doc.Number = n
	return doc
}

// IsAbsentDocument reports whether the legacy cedula column holds no usable
// document: empty, whitespace or the "NA" placeholder.
func IsAbsentDocument(text string) bool {
	s := strings.TrimSpace(text)
	return s == "" || strings.EqualFold(s, "NA")
}

func isDocType(r rune) bool {
	switch string(r) {
	case DocVenezolano, DocExtranjero, DocGobierno, DocJuridico:
		return true
	}
	return false
}
