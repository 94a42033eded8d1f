package literal

// URI identifies a literal datatype. It is opaque and compared by value.
type URI string

// String returns the URI text.
func (u URI) String() string { return string(u) }

// XSDNamespace is the XML Schema datatypes namespace.
const XSDNamespace = "http://www.w3.org/2001/XMLSchema#"

// Well-known datatypes.
const (
	XSDTime     URI = XSDNamespace + "time"
	XSDDate     URI = XSDNamespace + "date"
	XSDDateTime URI = XSDNamespace + "dateTime"
	XSDString   URI = XSDNamespace + "string"
)
