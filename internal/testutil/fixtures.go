package testutil

import (
	"embed"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/config"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// Fixture names.
const (
	ValidPorts      = "valid_ports.yaml"
	ValidPortsOut   = "valid_ports.golden"
	Conflicts       = "conflicts.yaml"
	BrokenInterface = "broken_interface.yaml"
	NotAMapping     = "not_a_mapping.yaml"
	Settings        = "settings.toml"
)

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadDocumentFixture loads and parses a port document fixture.
func LoadDocumentFixture(name string) (*config.Document, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	return config.ParseDocument(data)
}

// ValidDocument returns the two-interface document whose compiled form is
// the ValidPortsOut fixture.
func ValidDocument() (*config.Document, error) {
	return LoadDocumentFixture(ValidPorts)
}

// ConflictDocument returns a document with one port conflict and one
// out-of-range port.
func ConflictDocument() (*config.Document, error) {
	return LoadDocumentFixture(Conflicts)
}

// BrokenInterfaceDocument returns a document whose first interface has no
// subnet and whose second interface has one bad container id.
func BrokenInterfaceDocument() (*config.Document, error) {
	return LoadDocumentFixture(BrokenInterface)
}

// ValidOutput returns the expected compile output of ValidDocument.
func ValidOutput() (string, error) {
	data, err := LoadFixture(ValidPortsOut)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
