package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Keys recognised in an interface block.
const (
	KeyBridge   = "bridge"
	KeySubnet   = "subnet"
	KeyForwards = "forwards"
)

// Protocol keys recognised in a container body.
const (
	KeySSH    = "ssh"
	KeyTCP    = "tcp"
	KeyUDP    = "udp"
	KeyTCPUDP = "tcpudp"
)

// ErrEmptyDocument is returned for a port document without any content.
var ErrEmptyDocument = errors.New("port document is empty")

// Document is a parsed port document. Interfaces keep document order.
type Document struct {
	Interfaces []Interface
}

// Interface is one top-level block of the port document.
type Interface struct {
	Name       string
	Bridge     string
	Subnet     string
	Containers []Container
	// Unknown lists keys the block carries besides bridge/subnet/forwards.
	Unknown []string
	Line    int
	// Err is set when the block itself is malformed (not a mapping, bad
	// forwards section). Bridge and subnet are checked by the compiler.
	Err error
}

// Container is one entry under an interface's forwards section.
type Container struct {
	// Key is the raw key text, used for markers even when ID is unusable.
	Key  string
	ID   int
	Line int
	// Err is set when the key is not an integer or the body is malformed.
	Err error

	SSH    Spec
	TCP    Spec
	UDP    Spec
	TCPUDP Spec

	// Unknown lists body keys other than the four protocol keys.
	Unknown []string
}

// LoadDocument reads and parses the port document at path. A missing file
// yields an error matching fs.ErrNotExist.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read port document: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument parses a YAML port document. Only structural problems with
// the document as a whole are returned as errors; problems inside an
// interface or container block are recorded on that block.
func ParseDocument(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse port document: %w", err)
	}

	top := &root
	if top.Kind == yaml.DocumentNode {
		if len(top.Content) == 0 {
			return nil, ErrEmptyDocument
		}
		top = top.Content[0]
	}
	top = resolve(top)

	switch {
	case top.Kind == 0:
		return nil, ErrEmptyDocument
	case top.Kind == yaml.ScalarNode && top.ShortTag() == "!!null":
		return nil, ErrEmptyDocument
	case top.Kind != yaml.MappingNode:
		return nil, fmt.Errorf("top level must be a mapping of interfaces, got %s", describe(top))
	}

	entries, err := mappingPairs(top)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	for _, e := range entries {
		doc.Interfaces = append(doc.Interfaces, parseInterface(e.key, resolve(e.value)))
	}
	return doc, nil
}

func parseInterface(key, body *yaml.Node) Interface {
	iface := Interface{Name: key.Value, Line: key.Line}

	if body.Kind != yaml.MappingNode {
		iface.Err = fmt.Errorf("interface block must be a mapping, got %s", describe(body))
		return iface
	}

	entries, err := mappingPairs(body)
	if err != nil {
		iface.Err = err
		return iface
	}

	for _, e := range entries {
		k, v := e.key, resolve(e.value)
		switch k.Value {
		case KeyBridge:
			if v.Kind != yaml.ScalarNode || v.ShortTag() == "!!null" {
				iface.Err = fmt.Errorf("bridge must be a name, got %s", describe(v))
				return iface
			}
			iface.Bridge = v.Value
		case KeySubnet:
			if v.Kind != yaml.ScalarNode || v.ShortTag() == "!!null" {
				iface.Err = fmt.Errorf("subnet must be a CIDR string, got %s", describe(v))
				return iface
			}
			iface.Subnet = v.Value
		case KeyForwards:
			containers, err := parseForwards(v)
			if err != nil {
				iface.Err = err
				return iface
			}
			iface.Containers = containers
		default:
			iface.Unknown = append(iface.Unknown, k.Value)
		}
	}
	return iface
}

func parseForwards(n *yaml.Node) ([]Container, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("forwards must be a mapping of container ids, got %s", describe(n))
	}

	entries, err := mappingPairs(n)
	if err != nil {
		return nil, fmt.Errorf("forwards: %w", err)
	}

	containers := make([]Container, 0, len(entries))
	for _, e := range entries {
		containers = append(containers, parseContainer(e.key, resolve(e.value)))
	}
	return containers, nil
}

func parseContainer(key, body *yaml.Node) Container {
	c := Container{
		Key:    key.Value,
		Line:   key.Line,
		SSH:    AbsentSpec(),
		TCP:    AbsentSpec(),
		UDP:    AbsentSpec(),
		TCPUDP: AbsentSpec(),
	}

	if key.Kind != yaml.ScalarNode || key.ShortTag() != "!!int" {
		c.Err = fmt.Errorf("container id %q is not an integer", key.Value)
		return c
	}
	if err := key.Decode(&c.ID); err != nil {
		c.Err = fmt.Errorf("container id %q: %w", key.Value, err)
		return c
	}

	switch {
	case body.Kind == yaml.ScalarNode && body.ShortTag() == "!!null":
		return c
	case body.Kind != yaml.MappingNode:
		c.Err = fmt.Errorf("container %d must map protocols to port specs, got %s", c.ID, describe(body))
		return c
	}

	entries, err := mappingPairs(body)
	if err != nil {
		c.Err = fmt.Errorf("container %d: %w", c.ID, err)
		return c
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		k, v := e.key, e.value

		var slot *Spec
		switch k.Value {
		case KeySSH:
			slot = &c.SSH
		case KeyTCP:
			slot = &c.TCP
		case KeyUDP:
			slot = &c.UDP
		case KeyTCPUDP:
			slot = &c.TCPUDP
		default:
			c.Unknown = append(c.Unknown, k.Value)
			continue
		}

		if seen[k.Value] {
			c.Err = fmt.Errorf("container %d declares %s more than once", c.ID, k.Value)
			return c
		}
		seen[k.Value] = true
		*slot = classify(v)
	}
	return c
}

// classify turns a protocol spec node into its tagged Spec.
func classify(node *yaml.Node) Spec {
	n := resolve(node)

	var s Spec
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			s = NullSpec()
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				s = InvalidSpec(fmt.Sprintf("bool %q", n.Value))
			} else {
				s = BoolSpec(b)
			}
		case "!!int":
			var i int
			if err := n.Decode(&i); err != nil {
				s = InvalidSpec(fmt.Sprintf("integer %s out of range", n.Value))
			} else {
				s = IntSpec(i)
			}
		case "!!str":
			if b, ok := legacyBool(n); ok {
				s = BoolSpec(b)
			} else {
				s = ListSpec(n.Value)
			}
		default:
			s = InvalidSpec(describe(n))
		}
	case yaml.MappingNode:
		entries := make([]Entry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			entries = append(entries, Entry{
				Key:   scalar(n.Content[i]),
				Value: scalar(n.Content[i+1]),
			})
		}
		s = MappingSpec(entries...)
	default:
		s = InvalidSpec(describe(n))
	}

	s.Line = n.Line
	return s
}

// scalar resolves one key or value of a keyed spec.
func scalar(node *yaml.Node) Scalar {
	n := resolve(node)
	if n.Kind != yaml.ScalarNode {
		return Other(describe(n))
	}

	switch n.ShortTag() {
	case "!!null":
		return Null()
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return Scalar{Kind: ScalarBool, Bool: b, Text: n.Value}
		}
	case "!!int":
		var i int
		if err := n.Decode(&i); err == nil {
			return Scalar{Kind: ScalarInt, Int: i, Text: n.Value}
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return Scalar{Kind: ScalarFloat, Float: f, Text: n.Value}
		}
	case "!!str":
		if b, ok := legacyBool(n); ok {
			return Scalar{Kind: ScalarBool, Bool: b, Text: n.Value}
		}
		return String(n.Value)
	}
	return Other(describe(n))
}

// legacyBool reads the YAML 1.1 boolean words (yes, no, on, off) that
// yaml.v3 resolves as strings. Only plain, untagged scalars qualify.
func legacyBool(n *yaml.Node) (value, ok bool) {
	if n.Style != 0 {
		return false, false
	}
	switch n.Value {
	case "yes", "Yes", "YES", "on", "On", "ON":
		return true, true
	case "no", "No", "NO", "off", "Off", "OFF":
		return false, true
	}
	return false, false
}

// pair is one key/value of a mapping node.
type pair struct {
	key, value *yaml.Node
}

// mappingPairs returns the entries of mapping n with merge keys (<<)
// expanded. Merged entries come first. An explicit key overrides a merged
// one, and an earlier merge source overrides a later one.
func mappingPairs(n *yaml.Node) ([]pair, error) {
	return mergePairs(n, make(map[*yaml.Node]bool))
}

func mergePairs(n *yaml.Node, visiting map[*yaml.Node]bool) ([]pair, error) {
	if visiting[n] {
		return nil, fmt.Errorf("merge key references its own mapping")
	}
	visiting[n] = true
	defer delete(visiting, n)

	var explicit, merged []pair
	var sources []*yaml.Node

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			src := resolve(v)
			switch src.Kind {
			case yaml.MappingNode:
				sources = append(sources, src)
			case yaml.SequenceNode:
				for _, item := range src.Content {
					item = resolve(item)
					if item.Kind != yaml.MappingNode {
						return nil, fmt.Errorf("merge key must reference mappings, got a sequence holding %s", describe(item))
					}
					sources = append(sources, item)
				}
			default:
				return nil, fmt.Errorf("merge key must reference a mapping, got %s", describe(src))
			}
			continue
		}
		explicit = append(explicit, pair{key: k, value: v})
	}

	if len(sources) == 0 {
		return explicit, nil
	}

	taken := make(map[string]bool, len(explicit))
	for _, p := range explicit {
		taken[p.key.Value] = true
	}
	for _, src := range sources {
		inherited, err := mergePairs(src, visiting)
		if err != nil {
			return nil, err
		}
		for _, p := range inherited {
			if taken[p.key.Value] {
				continue
			}
			taken[p.key.Value] = true
			merged = append(merged, p)
		}
	}
	return append(merged, explicit...), nil
}

// resolve follows alias nodes to their anchors.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!float":
			return fmt.Sprintf("float %s", n.Value)
		case "!!null":
			return "null"
		case "!!str":
			return fmt.Sprintf("string %q", n.Value)
		default:
			return fmt.Sprintf("%s %s", n.ShortTag(), n.Value)
		}
	default:
		return "unsupported node"
	}
}
