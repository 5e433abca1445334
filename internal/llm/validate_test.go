package llm

import (
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name: "test-object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

type testObject struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Grade string `json:"grade"`
}

func TestDecodeJSON_Valid(t *testing.T) {
	var got testObject
	if err := DecodeJSON(`{"name":"Aiko","age":10,"grade":"A"}`, testSchema(), &got); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got.Name != "Aiko" || got.Age != 10 || got.Grade != "A" {
		t.Fatalf("unexpected value %+v", got)
	}
}

func TestDecodeJSON_ValidWithoutOptional(t *testing.T) {
	var got testObject
	if err := DecodeJSON(`{"name":"Ren","age":8}`, testSchema(), &got); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestDecodeJSON_Fenced(t *testing.T) {
	inputs := []string{
		"```json\n{\"name\":\"Yui\",\"age\":9}\n```",
		"```\n{\"name\":\"Yui\",\"age\":9}\n```",
		"  \n```JSON\n{\"name\":\"Yui\",\"age\":9}\n```  \n",
		"Here you go:\n```json\n{\"name\":\"Yui\",\"age\":9}\n```\nEnjoy!",
		"{\"name\":\"Yui\",\"age\":9}",
		"```json {\"name\":\"Yui\",\"age\":9}\n```",
	}
	for _, in := range inputs {
		var got testObject
		if err := DecodeJSON(in, testSchema(), &got); err != nil {
			t.Errorf("DecodeJSON(%q): %v", in, err)
			continue
		}
		if got.Name != "Yui" || got.Age != 9 {
			t.Errorf("DecodeJSON(%q) = %+v", in, got)
		}
	}
}

func TestDecodeJSON_BackticksInValue(t *testing.T) {
	var got testObject
	if err := DecodeJSON("{\"name\":\"see ``` here\",\"age\":7}", testSchema(), &got); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got.Name != "see ``` here" || got.Age != 7 {
		t.Fatalf("unexpected value %+v", got)
	}
}

func TestDecodeJSON_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"name":"Sora"}`},
		{"wrong type", `{"name":"Sora","age":"ten"}`},
		{"invalid enum", `{"name":"Sora","age":9,"grade":"D"}`},
		{"malformed", `{not json}`},
		{"empty", ``},
		{"fence only", "```json\n```"},
		{"trailing data", `{"name":"Sora","age":9} {"x":1}`},
		{"prose", `I could not generate exercises for this text.`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got testObject
			err := DecodeJSON(tt.raw, testSchema(), &got)
			var mp *MalformedPayloadError
			if !errors.As(err, &mp) {
				t.Fatalf("expected *MalformedPayloadError, got: %T (%v)", err, err)
			}
			if mp.Content != tt.raw {
				t.Fatalf("Content = %q, want raw reply", mp.Content)
			}
		})
	}
}

func TestDecodeJSON_NilSchema(t *testing.T) {
	var got map[string]any
	if err := DecodeJSON(`{"anything":"goes"}`, nil, &got); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
	if got["anything"] != "goes" {
		t.Fatalf("unexpected value %v", got)
	}
}

func TestDecodeJSON_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name: "test-nested",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"learner": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
					},
					"required": []any{"name"},
				},
				"scores": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "integer"},
				},
			},
			"required": []any{"learner", "scores"},
		},
	}

	var v map[string]any
	if err := DecodeJSON(`{"learner":{"name":"Aiko"},"scores":[90,85,92]}`, schema, &v); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := DecodeJSON(`{"learner":{"name":"Aiko"},"scores":["not","ints"]}`, schema, &v); err == nil {
		t.Fatal("expected error for wrong array item type")
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"{}", "{}"},
		{"  {}  ", "{}"},
		{"```json\n{}\n```", "{}"},
		{"```\n{}\n```", "{}"},
		{"```json {\"a\":1}```", `{"a":1}`},
		{"```{\"a\":1}```", `{"a":1}`},
		{"```json\n{\"a\":1}", `{"a":1}`},
		{"note\n```json\n[1]\n```\ntrailer", "[1]"},
		{"```json {\"a\":1}\n```", `{"a":1}`},
		{"```json\t{\"a\":1}\n```", `{"a":1}`},
		{"```{\"a\":1}\n```", `{"a":1}`},
		{"{\"a\":\"see ``` here\"}", "{\"a\":\"see ``` here\"}"},
		{"  [\"```\"]  ", "[\"```\"]"},
	}
	for _, tt := range tests {
		if got := StripFences(tt.in); got != tt.want {
			t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
