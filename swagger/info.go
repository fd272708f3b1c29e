package swagger

import (
	"github.com/speakeasy-api/oasgraph/fieldmap"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/parsenode"
)

var infoFields = fieldmap.FixedFieldMap[*model.Info]{
	"title":          stringField(func(i *model.Info) *string { return &i.Title }),
	"description":    stringField(func(i *model.Info) *string { return &i.Description }),
	"termsOfService": stringField(func(i *model.Info) *string { return &i.TermsOfService }),
	"version":        stringField(func(i *model.Info) *string { return &i.Version }),
	"contact": func(i *model.Info, n parsenode.Node) error {
		contact, err := loadContact(n)
		i.Contact = contact
		return err
	},
	"license": func(i *model.Info, n parsenode.Node) error {
		license, err := loadLicense(n)
		i.License = license
		return err
	},
}

var contactFields = fieldmap.FixedFieldMap[*model.Contact]{
	"name":  stringField(func(c *model.Contact) *string { return &c.Name }),
	"url":   stringField(func(c *model.Contact) *string { return &c.URL }),
	"email": stringField(func(c *model.Contact) *string { return &c.Email }),
}

var licenseFields = fieldmap.FixedFieldMap[*model.License]{
	"name": stringField(func(l *model.License) *string { return &l.Name }),
	"url":  stringField(func(l *model.License) *string { return &l.URL }),
}

var tagFields = fieldmap.FixedFieldMap[*model.Tag]{
	"name":        stringField(func(t *model.Tag) *string { return &t.Name }),
	"description": stringField(func(t *model.Tag) *string { return &t.Description }),
	"externalDocs": func(t *model.Tag, n parsenode.Node) error {
		docs, err := loadExternalDocs(n)
		t.ExternalDocs = docs
		return err
	},
}

var externalDocsFields = fieldmap.FixedFieldMap[*model.ExternalDocs]{
	"description": stringField(func(e *model.ExternalDocs) *string { return &e.Description }),
	"url":         stringField(func(e *model.ExternalDocs) *string { return &e.URL }),
}

// loadObject checks n is a mapping and parses it into a new T with fields.
func loadObject[T any](n parsenode.Node, name string, fields fieldmap.FixedFieldMap[*T]) (*T, error) {
	m, err := n.CheckMapNode(name)
	if err != nil {
		return nil, err
	}
	target := new(T)
	if err := fieldmap.ParseMap(m, target, fields, nil); err != nil {
		return nil, err
	}
	return target, nil
}

func loadInfo(n parsenode.Node) (*model.Info, error) {
	return loadObject(n, "info", infoFields)
}

func loadContact(n parsenode.Node) (*model.Contact, error) {
	return loadObject(n, "contact", contactFields)
}

func loadLicense(n parsenode.Node) (*model.License, error) {
	return loadObject(n, "license", licenseFields)
}

func loadTag(m *parsenode.MapNode) (*model.Tag, error) {
	return loadObject(m, "tag", tagFields)
}

func loadExternalDocs(n parsenode.Node) (*model.ExternalDocs, error) {
	return loadObject(n, "externalDocs", externalDocsFields)
}
