package soap

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Namespace URIs used across the EUDR services.
const (
	NamespaceSOAPEnv = "http://schemas.xmlsoap.org/soap/envelope/"
	NamespaceWSSE    = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
	NamespaceWSU     = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"

	// NamespaceBase is the TRACES NT base types namespace carrying the
	// WebServiceClientId element.
	NamespaceBase = "http://ec.europa.eu/sanco/tracesnt/base/v4"
)

// Envelope wraps an etree document shaped as a SOAP 1.1 envelope.
type Envelope struct {
	doc    *etree.Document
	root   *etree.Element
	header *etree.Element
	body   *etree.Element
}

// NewEnvelope creates an empty envelope with Header and Body elements.
func NewEnvelope() *Envelope {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("soapenv:Envelope")
	root.CreateAttr("xmlns:soapenv", NamespaceSOAPEnv)

	header := root.CreateElement("soapenv:Header")
	body := root.CreateElement("soapenv:Body")

	return &Envelope{doc: doc, root: root, header: header, body: body}
}

// DeclareNamespace declares an additional namespace prefix on the
// envelope root so body elements can use it.
func (e *Envelope) DeclareNamespace(prefix, uri string) {
	e.root.CreateAttr("xmlns:"+prefix, uri)
}

// Header returns the SOAP header element.
func (e *Envelope) Header() *etree.Element {
	return e.header
}

// Body returns the SOAP body element.
func (e *Envelope) Body() *etree.Element {
	return e.body
}

// Bytes serializes the envelope.
func (e *Envelope) Bytes() ([]byte, error) {
	data, err := e.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing envelope: %w", err)
	}
	return data, nil
}

// Parse reads a SOAP response document.
func Parse(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing SOAP response: %w", err)
	}
	return doc, nil
}

// FindElement returns the first descendant of el whose local tag matches
// localName, ignoring namespace prefixes. Returns nil when absent.
func FindElement(el *etree.Element, localName string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, child := range el.ChildElements() {
		if child.Tag == localName {
			return child
		}
		if found := FindElement(child, localName); found != nil {
			return found
		}
	}
	return nil
}

// FindElements returns every descendant of el whose local tag matches
// localName, in document order.
func FindElements(el *etree.Element, localName string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == localName {
			out = append(out, child)
		}
		out = append(out, FindElements(child, localName)...)
	}
	return out
}

// ElementText returns the trimmed text of the first matching descendant,
// or the empty string when the element is absent.
func ElementText(el *etree.Element, localName string) string {
	found := FindElement(el, localName)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(found.Text())
}
