package weavetest

import (
	"io/ioutil"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

var (
	protoMessageRx = regexp.MustCompile(`(?s)message (\w+) \{([^}]*)\}`)
	protoFieldRx   = regexp.MustCompile(`(?m)^\s*\w+ (\w+) = (\d+)(?: \[\(gogoproto\.casttype\) = "([^"]+)"\])?;`)
)

// AssertCodec fails the test if the protobuf struct tags of hand written
// models do not declare the same fields as the messages of the given proto
// file. Field names, numbers and casttype options are compared. models maps
// a message name to a value of its Go type.
func AssertCodec(t testing.TB, protoPath string, models map[string]interface{}) {
	t.Helper()

	raw, err := ioutil.ReadFile(protoPath)
	if err != nil {
		t.Fatalf("cannot read %s: %s", protoPath, err)
	}

	seen := make(map[string]bool)
	for _, m := range protoMessageRx.FindAllStringSubmatch(string(raw), -1) {
		name := m[1]
		model, ok := models[name]
		if !ok {
			t.Errorf("message %s: no Go type given", name)
			continue
		}
		seen[name] = true

		want := make(map[string]string)
		for _, f := range protoFieldRx.FindAllStringSubmatch(m[2], -1) {
			want[f[1]] = f[2] + " " + f[3]
		}
		got := tagFields(reflect.TypeOf(model))
		if !reflect.DeepEqual(want, got) {
			t.Errorf("message %s: proto declares %v, Go type declares %v", name, want, got)
		}
	}
	for name := range models {
		if !seen[name] {
			t.Errorf("message %s not declared in %s", name, protoPath)
		}
	}
}

// tagFields returns "number casttype" for every protobuf tagged field,
// keyed by the field name.
func tagFields(tp reflect.Type) map[string]string {
	if tp.Kind() == reflect.Ptr {
		tp = tp.Elem()
	}
	res := make(map[string]string)
	for i := 0; i < tp.NumField(); i++ {
		tag, ok := tp.Field(i).Tag.Lookup("protobuf")
		if !ok {
			continue
		}
		parts := strings.Split(tag, ",")
		if len(parts) < 2 {
			continue
		}
		var name, cast string
		for _, p := range parts[2:] {
			switch {
			case strings.HasPrefix(p, "name="):
				name = strings.TrimPrefix(p, "name=")
			case strings.HasPrefix(p, "casttype="):
				cast = strings.TrimPrefix(p, "casttype=")
			}
		}
		res[name] = parts[1] + " " + cast
	}
	return res
}
