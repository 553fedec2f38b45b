package main

import (
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/soocke/boxlabel-go/config"
	"github.com/soocke/boxlabel-go/domain/annotation"
)

func TestParseRect(t *testing.T) {
	tests := []struct {
		in      string
		want    region
		wantErr bool
	}{
		{in: "10,20,300,200", want: region{10, 20, 300, 200}},
		{in: " 0, 0, 5, 5 ", want: region{0, 0, 5, 5}},
		{in: "1,2,3", wantErr: true},
		{in: "a,b,c,d", wantErr: true},
		{in: "0,0,0,10", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseRect(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseRect(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Fatalf("parseRect(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestExportProposals_ClipsAndMapsLabels(t *testing.T) {
	cfg := config.DefaultConfig()
	src := annotation.Size{W: 128, H: 64}
	props := []annotation.Proposal{
		{Rect: image.Rect(16, 16, 48, 32), Label: "Buoy"},
		{Rect: image.Rect(96, 48, 200, 100), Label: "Whale"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	got, err := exportProposals(cfg, src, props, logger)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := []annotation.ExportRect{
		{XMin: 16, YMin: 16, XMax: 48, YMax: 32, Label: "Buoy"},
		{XMin: 96, YMin: 48, XMax: 127, YMax: 63, Label: "Ship"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rects (-want +got):\n%s", diff)
	}
}
