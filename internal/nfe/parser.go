package nfe

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/charmap"
)

// Namespace is the namespace URI of every NFe document
const Namespace = "http://www.portalfiscal.inf.br/nfe"

// accessKeyPrefix is the fixed prefix of the infNFe Id attribute
const accessKeyPrefix = "NFe"

// FieldPath is a sequence of local element names below infNFe. Lookups
// match on local name and accept elements in the NFe namespace (or no
// namespace at all), so callers never spell out a namespace prefix.
type FieldPath []string

// Document is a parsed, namespace-resolved NFe document rooted at the
// infNFe element.
type Document struct {
	infNFe *etree.Element
}

// Parse decodes and parses raw XML bytes into a Document. The encoding
// is guessed from a fixed ordered list (UTF-8, ISO-8859-1,
// Windows-1252); the first that decodes without error wins.
func Parse(raw []byte) (*Document, error) {
	text, err := decode(raw)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	// Bytes are already decoded to UTF-8; ignore any charset declared in
	// the XML prolog.
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	if err := doc.ReadFromString(text); err != nil {
		return nil, &MalformedDocumentError{Reason: "invalid XML", Err: err}
	}

	root := doc.Root()
	if root == nil {
		return nil, &MalformedDocumentError{Reason: "document has no root element"}
	}

	infNFe := findDescendant(root, "infNFe")
	if infNFe == nil {
		return nil, &MalformedDocumentError{Reason: "infNFe element not found"}
	}

	return &Document{infNFe: infNFe}, nil
}

// AccessKey returns the fiscal access key, taken from the infNFe Id
// attribute with the fixed textual prefix stripped.
func (d *Document) AccessKey() string {
	id := d.infNFe.SelectAttrValue("Id", "")
	return strings.TrimPrefix(id, accessKeyPrefix)
}

// Text returns the trimmed text of the element at path, or the empty
// string when the element is absent.
func (d *Document) Text(path FieldPath) string {
	el := d.lookup(path)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// Has reports whether the element at path exists
func (d *Document) Has(path FieldPath) bool {
	return d.lookup(path) != nil
}

func (d *Document) lookup(path FieldPath) *etree.Element {
	current := d.infNFe
	for _, name := range path {
		var next *etree.Element
		for _, child := range current.ChildElements() {
			if matches(child, name) {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

// matches compares an element against a local name, accepting only the
// NFe namespace when the element carries one.
func matches(el *etree.Element, name string) bool {
	if el.Tag != name {
		return false
	}
	if uri := el.NamespaceURI(); uri != "" && uri != Namespace {
		return false
	}
	return true
}

// findDescendant walks the tree depth-first for the first element with
// the given local name.
func findDescendant(el *etree.Element, name string) *etree.Element {
	for _, child := range el.ChildElements() {
		if matches(child, name) {
			return child
		}
		if found := findDescendant(child, name); found != nil {
			return found
		}
	}
	return nil
}

// decode tries the fixed encoding list against the raw bytes
func decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		out, err := cm.NewDecoder().Bytes(raw)
		if err == nil {
			return string(out), nil
		}
	}

	return "", ErrUndecodableDocument
}
