package soap

import "fmt"

// Fault is a SOAP Fault returned by the remote service. EUDR delivers
// faults with HTTP status 500, so the transport inspects the body before
// classifying the status code.
type Fault struct {
	Code   string
	Reason string
	Detail string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("soap fault %s: %s (%s)", f.Code, f.Reason, f.Detail)
	}
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.Reason)
}

// ParseFault extracts a Fault from a response body. It returns nil when
// the body is not a SOAP fault, including when it is not XML at all.
func ParseFault(data []byte) *Fault {
	doc, err := Parse(data)
	if err != nil {
		return nil
	}

	root := doc.Root()
	if root == nil {
		return nil
	}

	faultEl := FindElement(root, "Fault")
	if faultEl == nil {
		return nil
	}

	return &Fault{
		Code:   ElementText(faultEl, "faultcode"),
		Reason: ElementText(faultEl, "faultstring"),
		Detail: ElementText(faultEl, "detail"),
	}
}
