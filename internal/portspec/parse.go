package portspec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/config"
)

// Parse normalizes a tcp, udp or tcpudp spec into source -> destination
// pairs. Entries that cannot be used are dropped and described in
// Result.Issues; the rest of the spec still applies. Port bounds are not
// checked here.
func Parse(s config.Spec) Result {
	var r Result

	switch s.Shape {
	case config.ShapeAbsent, config.ShapeNull:
	case config.ShapeBool:
		r.warnf("boolean %v is not a port spec", s.Bool)
	case config.ShapeInt:
		r.Mapping.Add(s.Int, s.Int)
	case config.ShapeList:
		parseList(&r, s.Text)
	case config.ShapeMapping:
		for _, e := range s.Entries {
			parseEntry(&r, e)
		}
		if r.Absent() && len(s.Entries) > 0 {
			r.warnf("no usable entries in %s", s)
		}
	case config.ShapeInvalid:
		r.warnf("unexpected %s, want a port, a comma separated list of ports or a mapping", s.Text)
	default:
		r.warnf("unexpected spec shape %v", s.Shape)
	}

	return r
}

func parseList(r *Result, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	for _, tok := range strings.Split(text, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			r.warnf("ignoring empty entry in %q", text)
			continue
		}
		port, err := strconv.Atoi(tok)
		if err != nil {
			r.warnf("ignoring %q in %q: not an integer", tok, text)
			continue
		}
		if !r.Mapping.Add(port, port) {
			r.debugf("port %d listed more than once in %q", port, text)
		}
	}
}

func parseEntry(r *Result, e config.Entry) {
	source, err := coerceKey(e.Key)
	if err != nil {
		r.warnf("ignoring entry %s: %s: %v", e.Key, e.Value, err)
		return
	}

	dest, err := coerceValue(e.Value, source)
	if err != nil {
		r.warnf("ignoring entry %s: %s: %v", e.Key, e.Value, err)
		return
	}

	if !r.Mapping.Add(source, dest) {
		r.warnf("ignoring entry %s: %s: source port %d already mapped", e.Key, e.Value, source)
	}
}

func coerceKey(k config.Scalar) (int, error) {
	switch k.Kind {
	case config.ScalarInt:
		return k.Int, nil
	case config.ScalarString:
		return atoi(k.Text)
	case config.ScalarFloat:
		return 0, fmt.Errorf("source port %s is not an integer", k.Text)
	case config.ScalarBool:
		return 0, fmt.Errorf("boolean source port")
	case config.ScalarNull:
		return 0, fmt.Errorf("empty source port")
	default:
		return 0, fmt.Errorf("source port is a %s", k.Text)
	}
}

// coerceValue resolves a destination. An empty value or true reuses the
// source port.
func coerceValue(v config.Scalar, source int) (int, error) {
	switch v.Kind {
	case config.ScalarNull:
		return source, nil
	case config.ScalarBool:
		if v.Bool {
			return source, nil
		}
		return 0, fmt.Errorf("forward disabled with false")
	case config.ScalarInt:
		return v.Int, nil
	case config.ScalarString:
		return atoi(v.Text)
	case config.ScalarFloat:
		return 0, fmt.Errorf("destination port %s is not an integer", v.Text)
	default:
		return 0, fmt.Errorf("destination port is a %s", v.Text)
	}
}

func atoi(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", text)
	}
	return n, nil
}
