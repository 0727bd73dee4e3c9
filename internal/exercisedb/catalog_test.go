package exercisedb

import (
	"reflect"
	"testing"
)

func TestGroupsRoundTrip(t *testing.T) {
	cases := []struct {
		groups []string
		joined string
	}{
		{nil, ""},
		{[]string{"chest"}, "chest"},
		{[]string{"chest", "triceps", "front delts"}, "chest,triceps,front delts"},
	}
	for _, c := range cases {
		if got := joinGroups(c.groups); got != c.joined {
			t.Errorf("joinGroups(%v) = %q, want %q", c.groups, got, c.joined)
		}
		if got := splitGroups(c.joined); !reflect.DeepEqual(got, c.groups) {
			t.Errorf("splitGroups(%q) = %v, want %v", c.joined, got, c.groups)
		}
	}
}

func TestSplitGroupsTrimsBlanks(t *testing.T) {
	got := splitGroups("chest, ,triceps,")
	want := []string{"chest", "triceps"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitGroups = %v, want %v", got, want)
	}
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"bench":     "bench",
		"100%":      `100\%`,
		"under_bar": `under\_bar`,
		`back\arch`: `back\\arch`,
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}
