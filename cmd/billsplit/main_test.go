package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const snapshot = `{
	"title": "Road Trip",
	"date": "2024-08-10",
	"participants": [
		{"id": "a", "name": "Alice"},
		{"id": "b", "name": "Bob"},
		{"id": "c", "name": "Carol"}
	],
	"expenses": [{
		"id": "e1",
		"description": "Gas",
		"amount": 90,
		"paidBy": "a",
		"splits": [
			{"participantId": "a", "amount": 30, "isEqual": true},
			{"participantId": "b", "amount": 30, "isEqual": true},
			{"participantId": "c", "amount": 30, "isEqual": true}
		]
	}]
}`

func TestRun_ReportFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bill.json")
	if err := os.WriteFile(path, []byte(snapshot), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run([]string{"report", path}, nil, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, want := range []string{
		"Road Trip (2024-08-10)",
		"Total: $90.00",
		"Bob pays Alice $30.00",
		"Carol pays Alice $30.00",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_ReportFromStdin(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"report", "-"}, strings.NewReader(snapshot), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Gets back $60.00") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
	}{
		{"no args", nil, ""},
		{"unknown command", []string{"print", "x"}, ""},
		{"missing file", []string{"report", filepath.Join(t.TempDir(), "nope.json")}, ""},
		{"malformed json", []string{"report", "-"}, "{"},
		{"invalid bill", []string{"report", "-"}, `{"participants":[{"id":"a","name":""}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(tt.args, strings.NewReader(tt.stdin), &out); err == nil {
				t.Error("expected error")
			}
		})
	}

	if err := run(nil, nil, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Errorf("expected usage error, got %v", err)
	}
}
