package model

import (
	"github.com/speakeasy-api/oasgraph/sequencedmap"
)

type SecuritySchemeType string

const (
	SecuritySchemeTypeAPIKey SecuritySchemeType = "apiKey"
	SecuritySchemeTypeHTTP   SecuritySchemeType = "http"
	SecuritySchemeTypeOAuth2 SecuritySchemeType = "oauth2"
)

type SecurityScheme struct {
	Referencing
	Source
	Extended

	Type        SecuritySchemeType
	Description string
	// Name and In apply to apiKey schemes.
	Name string
	In   ParameterLocation
	// Scheme applies to http schemes, e.g. "basic".
	Scheme string
	Flows  *OAuthFlows
}

type OAuthFlows struct {
	Source
	Extended

	Implicit          *OAuthFlow
	Password          *OAuthFlow
	ClientCredentials *OAuthFlow
	AuthorizationCode *OAuthFlow
}

type OAuthFlow struct {
	Source
	Extended

	AuthorizationURL string
	TokenURL         string
	RefreshURL       string
	Scopes           *sequencedmap.Map[string, string]
}

// SecurityRequirement lists the schemes that together satisfy one alternative of a security requirement.
type SecurityRequirement struct {
	Source

	Entries []*SecurityRequirementEntry
}

// SecurityRequirementEntry names one scheme, as a placeholder until resolved, and the scopes it needs.
type SecurityRequirementEntry struct {
	Scheme *SecurityScheme
	Scopes []string
}
