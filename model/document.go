package model

// Document is the root of a parsed API description.
type Document struct {
	Source
	Extended

	// SpecVersion is the version the document declared, e.g. "2.0".
	SpecVersion string

	Info                 *Info
	Servers              []*Server
	Paths                *Paths
	Components           *Components
	SecurityRequirements []*SecurityRequirement
	Tags                 []*Tag
	ExternalDocs         *ExternalDocs
}

type Info struct {
	Source
	Extended

	Title          string
	Description    string
	TermsOfService string
	Contact        *Contact
	License        *License
	Version        string
}

type Contact struct {
	Source
	Extended

	Name  string
	URL   string
	Email string
}

type License struct {
	Source
	Extended

	Name string
	URL  string
}

// Server is a base URL the API is served from.
type Server struct {
	Source
	Extended

	URL         string
	Description string
}

type Tag struct {
	Source
	Extended

	Name         string
	Description  string
	ExternalDocs *ExternalDocs
}

type ExternalDocs struct {
	Source
	Extended

	Description string
	URL         string
}
