package sqldemo_test

import (
	"encoding/json"
	"testing"

	"github.com/arllen133/sqldemo"
)

func TestRecord_MarshalJSONKeepsColumnOrder(t *testing.T) {
	r := sqldemo.NewRecord(
		[]string{"name", "id", "age", "email"},
		[]any{"Jane", int64(2), int64(25), nil},
	)

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"name":"Jane","id":2,"age":25,"email":null}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

func TestRecord_Empty(t *testing.T) {
	b, err := json.Marshal(sqldemo.NewRecord(nil, nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "{}" {
		t.Errorf("got %s, want {}", b)
	}
}

func TestNewRecord_DuplicateColumns(t *testing.T) {
	r := sqldemo.NewRecord([]string{"name", "age", "name"}, []any{"first", int64(1), "last"})

	cols := r.Columns()
	if len(cols) != 2 || cols[0] != "name" || cols[1] != "age" {
		t.Fatalf("unexpected columns %v", cols)
	}
	v, ok := r.Get("name")
	if !ok || v != "last" {
		t.Errorf("Get(name) = %v, %v; want last, true", v, ok)
	}
}

func TestNewRecord_BytesBecomeStrings(t *testing.T) {
	r := sqldemo.NewRecord([]string{"blob"}, []any{[]byte("abc")})
	v, _ := r.Get("blob")
	if s, ok := v.(string); !ok || s != "abc" {
		t.Errorf("expected string abc, got %#v", v)
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("expected missing column to be absent")
	}
}

func TestRecord_MarshalJSONNoHTMLEscape(t *testing.T) {
	// json.Marshal would re-escape the output; call the method directly.
	b, err := sqldemo.NewRecord([]string{"a<b"}, []any{"x>1 & y"}).MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"a<b":"x>1 & y"}` {
		t.Errorf("got %s", b)
	}
}
