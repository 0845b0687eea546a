//go:build lambda

package main

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/spunky-sabin/clash-clone/internal/converter"
	"github.com/spunky-sabin/clash-clone/internal/loader"
)

func TestHandle(t *testing.T) {
	cat, err := loader.LoadCatalog("../../testdata")
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	snapshot, err := os.ReadFile("../../testdata/player.json")
	if err != nil {
		t.Fatalf("Failed to read snapshot: %v", err)
	}
	body, _ := json.Marshal(converter.AnalyzeRequest{Snapshot: snapshot})
	now := time.Unix(1760000600, 0)

	plain, _ := handle(cat, events.LambdaFunctionURLRequest{Body: string(body)}, now)
	encoded, _ := handle(cat, events.LambdaFunctionURLRequest{
		Body:            base64.StdEncoding.EncodeToString(body),
		IsBase64Encoded: true,
	}, now)

	for name, resp := range map[string]events.LambdaFunctionURLResponse{"plain": plain, "base64": encoded} {
		if resp.StatusCode != 200 {
			t.Fatalf("%s: expected 200, got %d: %s", name, resp.StatusCode, resp.Body)
		}
		var dto converter.ReportDTO
		if err := json.Unmarshal([]byte(resp.Body), &dto); err != nil {
			t.Fatalf("%s: Failed to decode report: %v", name, err)
		}
		if dto.Tier != 10 {
			t.Errorf("%s: expected tier 10, got %d", name, dto.Tier)
		}
	}
}

func TestHandleErrors(t *testing.T) {
	cat, err := loader.LoadCatalog("../../testdata")
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	now := time.Unix(1760000600, 0)

	tests := []struct {
		name  string
		event events.LambdaFunctionURLRequest
		want  int
	}{
		{"bad base64", events.LambdaFunctionURLRequest{Body: "%%%", IsBase64Encoded: true}, 400},
		{"bad json", events.LambdaFunctionURLRequest{Body: "{"}, 400},
		{"no snapshot", events.LambdaFunctionURLRequest{Body: "{}"}, 400},
		{"no hall", events.LambdaFunctionURLRequest{Body: `{"snapshot":{"buildings":[{"data":1000002,"lvl":1}]}}`}, 422},
	}
	for _, tt := range tests {
		resp, _ := handle(cat, tt.event, now)
		if resp.StatusCode != tt.want {
			t.Errorf("%s: expected %d, got %d: %s", tt.name, tt.want, resp.StatusCode, resp.Body)
		}
	}
}
