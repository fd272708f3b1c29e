package model

import (
	"github.com/speakeasy-api/oasgraph/sequencedmap"
	"gopkg.in/yaml.v3"
)

// ParameterLocation is where a parameter is carried. It is empty for Swagger 2.0 body parameters.
type ParameterLocation string

const (
	ParameterLocationQuery  ParameterLocation = "query"
	ParameterLocationHeader ParameterLocation = "header"
	ParameterLocationPath   ParameterLocation = "path"
	ParameterLocationCookie ParameterLocation = "cookie"
)

type Parameter struct {
	Referencing
	Source
	Extended

	Name            string
	In              ParameterLocation
	Description     string
	Required        bool
	Deprecated      bool
	AllowEmptyValue bool
	Style           string
	Explode         *bool
	Schema          *Schema
}

type RequestBody struct {
	Referencing
	Source
	Extended

	Description string
	Required    bool
	// Content maps media types to their payload description.
	Content *sequencedmap.Map[string, *MediaType]
}

type MediaType struct {
	Source
	Extended

	Schema  *Schema
	Example *yaml.Node
}

type Response struct {
	Referencing
	Source
	Extended

	Description string
	Headers     *sequencedmap.Map[string, *Header]
	Content     *sequencedmap.Map[string, *MediaType]
}

type Header struct {
	Referencing
	Source
	Extended

	Description string
	Required    bool
	Deprecated  bool
	Schema      *Schema
}
