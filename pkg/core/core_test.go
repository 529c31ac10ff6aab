package core

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun_Smoke(t *testing.T) {
	cfg := Config{
		Root:      t.TempDir(),
		ExportDir: t.TempDir(),
		// keep defaults: every extractor enabled
	}
	res, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(res.Modules) == 0 {
		t.Fatal("expected module results for an empty tree")
	}
	for _, m := range res.Modules {
		if m.Err != nil {
			t.Errorf("module %s failed on empty tree: %v", m.ID, m.Err)
		}
	}
	if len(ExtractorIDs()) != len(res.Modules) {
		t.Fatalf("expected all %d extractors to run, got %d", len(ExtractorIDs()), len(res.Modules))
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	res := Result{
		Modules: []ModuleResult{
			{ID: "vins", Name: "Extraction des VINs", Count: 3},
		},
	}
	var buf bytes.Buffer
	if err := MarshalResult(&buf, res); err != nil {
		t.Fatalf("MarshalResult: %v", err)
	}
	if !strings.Contains(buf.String(), `"vins"`) {
		t.Fatalf("missing module ID in output: %s", buf.String())
	}
	back, err := UnmarshalResult(&buf)
	if err != nil {
		t.Fatalf("UnmarshalResult: %v", err)
	}
	if len(back.Modules) != 1 || back.Modules[0].Count != 3 {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestValidateVIN(t *testing.T) {
	if !ValidateVIN("1HGCM82633A004352") {
		t.Fatal("known-good VIN rejected")
	}
	if ValidateVIN("1HGCM82634A004352") {
		t.Fatal("wrong check digit accepted")
	}
}
