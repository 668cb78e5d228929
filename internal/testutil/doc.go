// Package testutil provides test fixtures and utilities.
//
// This package embeds YAML port documents, a settings file and the golden
// output of the valid document, plus a scratch environment for running
// commands end to end.
//
// # Fixtures
//
// Fixtures are embedded using go:embed:
//
//	fixtures/valid_ports.yaml
//	fixtures/valid_ports.golden
//	fixtures/conflicts.yaml
//	fixtures/broken_interface.yaml
//	fixtures/not_a_mapping.yaml
//	fixtures/settings.toml
//
// # Loading Fixtures
//
//	doc, err := testutil.ValidDocument()
//	want, err := testutil.ValidOutput()
//	data, err := testutil.LoadFixture(testutil.Conflicts)
//
// # Test Environment
//
//	env := testutil.NewTestEnv(t)
//	env.WriteInput(testutil.ValidPorts)
//	// run the command with --root env.Root
//	got := env.ReadFile(env.RootPath(config.DefaultOutput))
package testutil
