package engine

import "testing"

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"bare fence", "```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"no fence", "{\"a\":1}", "{\"a\":1}"},
		{"whitespace", "  {\"a\":1}  ", "{\"a\":1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.in); got != tt.want {
				t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	got, ok := ExtractJSONObject("Here is the result: {\"topics\": []} hope that helps")
	if !ok || got != "{\"topics\": []}" {
		t.Errorf("ExtractJSONObject() = %q, %v", got, ok)
	}
	if _, ok := ExtractJSONObject("no braces here"); ok {
		t.Error("ExtractJSONObject() should fail without braces")
	}
	if _, ok := ExtractJSONObject("} backwards {"); ok {
		t.Error("ExtractJSONObject() should fail when close precedes open")
	}
}

func TestDecodeInsight(t *testing.T) {
	type payload struct {
		Topics []string `json:"topics"`
	}

	tests := []struct {
		name    string
		raw     string
		wantErr bool
		wantLen int
	}{
		{"clean", `{"topics":["a","b"]}`, false, 2},
		{"fenced", "```json\n{\"topics\":[\"a\"]}\n```", false, 1},
		{"prose wrapped", `Sure! {"topics":["a","b","c"]} Let me know.`, false, 3},
		{"garbage", "I cannot produce JSON for this request.", true, 0},
		{"empty", "", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := DecodeInsight(tt.raw, &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeInsight() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(p.Topics) != tt.wantLen {
				t.Errorf("got %d topics, want %d", len(p.Topics), tt.wantLen)
			}
		})
	}
}
