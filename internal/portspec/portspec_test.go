package portspec

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/config"
)

func ints(pairs ...int) Mapping {
	var m Mapping
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Add(pairs[i], pairs[i+1])
	}
	return m
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		spec       config.Spec
		want       Mapping
		wantIssues int
	}{
		{"absent", config.AbsentSpec(), Mapping{}, 0},
		{"null", config.NullSpec(), Mapping{}, 0},
		{"true", config.BoolSpec(true), Mapping{}, 1},
		{"false", config.BoolSpec(false), Mapping{}, 1},
		{"float", config.InvalidSpec("float 1.0"), Mapping{}, 1},
		{"sequence", config.InvalidSpec("sequence"), Mapping{}, 1},
		{"single int", config.IntSpec(123), ints(123, 123), 0},
		{"list", config.ListSpec("123, 456 ,789"), ints(123, 123, 456, 456, 789, 789), 0},
		{"list keeps order", config.ListSpec("789,123,456"), ints(789, 789, 123, 123, 456, 456), 0},
		{"single item list", config.ListSpec("80"), ints(80, 80), 0},
		{"list skips bad tokens", config.ListSpec("80, http, 443"), ints(80, 80, 443, 443), 1},
		{"list skips empty tokens", config.ListSpec("80,,443,"), ints(80, 80, 443, 443), 2},
		{"list duplicate", config.ListSpec("80, 80"), ints(80, 80), 1},
		{"list with no integers", config.ListSpec("http, https"), Mapping{}, 2},
		{"empty text", config.ListSpec("  "), Mapping{}, 0},
		{
			"mapping",
			config.MappingSpec(
				config.Entry{Key: config.Int(123), Value: config.Int(345)},
				config.Entry{Key: config.Int(324), Value: config.Int(5445)},
			),
			ints(123, 345, 324, 5445),
			0,
		},
		{
			"mapping coerces text",
			config.MappingSpec(
				config.Entry{Key: config.Int(123), Value: config.String("123")},
				config.Entry{Key: config.String("345"), Value: config.Int(345)},
				config.Entry{Key: config.String("567"), Value: config.String("567")},
			),
			ints(123, 123, 345, 345, 567, 567),
			0,
		},
		{
			"mapping identity values",
			config.MappingSpec(
				config.Entry{Key: config.Int(5432), Value: config.Null()},
				config.Entry{Key: config.Int(6379), Value: config.Bool(true)},
			),
			ints(5432, 5432, 6379, 6379),
			0,
		},
		{
			"mapping with only invalid entries",
			config.MappingSpec(
				config.Entry{Key: config.Int(123), Value: config.Float(1.0)},
				config.Entry{Key: config.Int(222), Value: config.Bool(false)},
				config.Entry{Key: config.Float(12.1), Value: config.Bool(true)},
			),
			Mapping{},
			4,
		},
		{
			"mapping keeps valid siblings",
			config.MappingSpec(
				config.Entry{Key: config.Int(80), Value: config.Int(8080)},
				config.Entry{Key: config.String("ssh"), Value: config.Int(22)},
				config.Entry{Key: config.Int(443), Value: config.Other("sequence")},
				config.Entry{Key: config.Bool(true), Value: config.Int(1)},
				config.Entry{Key: config.Null(), Value: config.Int(2)},
				config.Entry{Key: config.Int(53), Value: config.String("53")},
			),
			ints(80, 8080, 53, 53),
			4,
		},
		{
			"mapping duplicate after coercion",
			config.MappingSpec(
				config.Entry{Key: config.Int(80), Value: config.Int(8080)},
				config.Entry{Key: config.String("80"), Value: config.Int(9090)},
			),
			ints(80, 8080),
			1,
		},
		{"empty mapping", config.MappingSpec(), Mapping{}, 0},
		{"out of range ports pass through", config.IntSpec(70000), ints(70000, 70000), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.spec)
			if diff := cmp.Diff(tt.want, got.Mapping); diff != "" {
				t.Errorf("Parse() mapping mismatch (-want +got):\n%s", diff)
			}
			if len(got.Issues) != tt.wantIssues {
				t.Errorf("Parse() issues = %v, want %d", got.Issues, tt.wantIssues)
			}
			if got.Absent() != (tt.want.Len() == 0) {
				t.Errorf("Absent() = %v", got.Absent())
			}
		})
	}
}

func TestParse_IssueText(t *testing.T) {
	got := Parse(config.InvalidSpec("sequence"))
	if len(got.Issues) != 1 || !strings.Contains(got.Issues[0].Message, "unexpected sequence") {
		t.Fatalf("issues = %v, want one naming the sequence shape", got.Issues)
	}
	if got.Issues[0].Severity != SeverityWarn {
		t.Errorf("severity = %v, want warn", got.Issues[0].Severity)
	}

	got = Parse(config.ListSpec("80, 80"))
	if len(got.Issues) != 1 || got.Issues[0].Severity != SeverityDebug {
		t.Errorf("duplicate list entry should be a debug issue, got %v", got.Issues)
	}
}

func TestResolveSSH(t *testing.T) {
	tests := []struct {
		name        string
		spec        config.Spec
		containerID int
		want        Mapping
		wantIssue   bool
	}{
		{"null", config.NullSpec(), 100, ints(10022, 22), false},
		{"absent", config.AbsentSpec(), 100, ints(10022, 22), false},
		{"true", config.BoolSpec(true), 100, ints(10022, 22), false},
		{"override", config.IntSpec(23), 100, ints(10023, 23), false},
		{"override zero", config.IntSpec(0), 3, ints(300, 0), false},
		{"false", config.BoolSpec(false), 100, Mapping{}, false},
		{"id too large", config.IntSpec(23), 100000, Mapping{}, true},
		{"id too large even when disabled", config.BoolSpec(false), 655, Mapping{}, true},
		{"largest id", config.NullSpec(), 654, ints(65422, 22), false},
		{"largest id top of block", config.IntSpec(99), 654, ints(65499, 99), false},
		{"negative id", config.NullSpec(), -1, Mapping{}, true},
		{"value at block size", config.IntSpec(100), 100, Mapping{}, true},
		{"value above block size", config.IntSpec(2222), 1, Mapping{}, true},
		{"text", config.ListSpec("22"), 100, Mapping{}, true},
		{"mapping", config.MappingSpec(config.Entry{Key: config.Int(22), Value: config.Int(22)}), 100, Mapping{}, true},
		{"invalid", config.InvalidSpec("float 22.5"), 100, Mapping{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSSH(tt.spec, tt.containerID)
			if diff := cmp.Diff(tt.want, got.Mapping); diff != "" {
				t.Errorf("ResolveSSH() mismatch (-want +got):\n%s", diff)
			}
			hasWarn := false
			for _, is := range got.Issues {
				if is.Severity == SeverityWarn {
					hasWarn = true
				}
			}
			if hasWarn != tt.wantIssue {
				t.Errorf("ResolveSSH() issues = %v, want warning: %v", got.Issues, tt.wantIssue)
			}
		})
	}
}

func TestResolveSSH_RecommendsTCP(t *testing.T) {
	for _, r := range []Result{
		ResolveSSH(config.IntSpec(23), 1000),
		ResolveSSH(config.IntSpec(100), 1),
	} {
		if len(r.Issues) != 1 || !strings.Contains(r.Issues[0].Message, "use a tcp spec") {
			t.Errorf("issues = %v, want a tcp recommendation", r.Issues)
		}
	}
}

func TestMaxSSHContainerID(t *testing.T) {
	if MaxSSHContainerID != 654 {
		t.Errorf("MaxSSHContainerID = %d, want 654", MaxSSHContainerID)
	}
	if SSHSourcePort(MaxSSHContainerID, SSHBlock-1) > 65535 {
		t.Error("top of the last ssh block must be a valid port")
	}
}

func TestMapping(t *testing.T) {
	var m Mapping
	if !m.Add(80, 8080) {
		t.Fatal("first Add should succeed")
	}
	if m.Add(80, 9090) {
		t.Error("second Add for the same source should be refused")
	}
	m.Add(22, 22)

	if got := m.String(); got != "{80:8080, 22:22}" {
		t.Errorf("String() = %q", got)
	}

	pairs := m.Pairs()
	pairs[0].Dest = 1
	if m.Pairs()[0].Dest != 8080 {
		t.Error("Pairs() must return a copy")
	}

	var same, reversed Mapping
	same.Add(80, 8080)
	same.Add(22, 22)
	reversed.Add(22, 22)
	reversed.Add(80, 8080)
	if !m.Equal(same) {
		t.Error("Equal() should match the same pairs")
	}
	if m.Equal(reversed) {
		t.Error("Equal() is order sensitive")
	}
}
