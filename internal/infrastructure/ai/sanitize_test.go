package ai

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestSanitizeJSON_RoundTrip(t *testing.T) {
	in := map[string]any{"a": "b", "n": float64(3), "list": []any{"x", "y"}}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	raw, perr := SanitizeJSON(string(b))
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: %v vs %v", in, out)
	}
}

func TestSanitizeJSON_StripsFences(t *testing.T) {
	fenced := "```json\n{\"ok\": true}\n```"
	plain := `{"ok": true}`

	a, perr := SanitizeJSON(fenced)
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	b, perr := SanitizeJSON(plain)
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}

	var av, bv any
	if err := json.Unmarshal(a, &av); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(av, bv) {
		t.Fatalf("fenced and plain parse differently: %v vs %v", av, bv)
	}
}

func TestSanitizeJSON_BareFence(t *testing.T) {
	raw, perr := SanitizeJSON("```\n[1,2,3]\n```")
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	var arr []int
	if err := json.Unmarshal(raw, &arr); err != nil {
		t.Fatal(err)
	}
	if len(arr) != 3 {
		t.Fatalf("expected 3 elements, got %v", arr)
	}
}

func TestSanitizeJSON_FailureShape(t *testing.T) {
	_, perr := SanitizeJSON("{ not valid }")
	if perr == nil {
		t.Fatal("expected parse error")
	}
	if perr.Message != ParseErrorMessage {
		t.Fatalf("unexpected message: %q", perr.Message)
	}
	if !strings.HasSuffix(perr.RawTextSample, "...") {
		t.Fatalf("sample missing ellipsis: %q", perr.RawTextSample)
	}
}

func TestSanitizeJSON_SampleTruncation(t *testing.T) {
	long := strings.Repeat("x", 5000)
	_, perr := SanitizeJSON(long)
	if perr == nil {
		t.Fatal("expected parse error")
	}
	if len(perr.RawTextSample) > rawSampleLimit+3 {
		t.Fatalf("sample too long: %d", len(perr.RawTextSample))
	}

	b, err := json.Marshal(perr)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["error"]; !ok {
		t.Fatal("serialized parse error missing error key")
	}
	if _, ok := m["raw_text_sample"]; !ok {
		t.Fatal("serialized parse error missing raw_text_sample key")
	}
}
