package render

import (
	"context"
	"errors"
	"math"
	"testing"

	"smartfolio/internal/config"
	"smartfolio/internal/resume"
)

func TestNewEngine_SelectsConfiguredProvider(t *testing.T) {
	cases := []struct {
		provider string
		want     string
	}{
		{"rod", "rod"},
		{"chromedp", "chromedp"},
	}
	for _, tc := range cases {
		engine, err := NewEngine(config.RenderConfig{Provider: tc.provider})
		if err != nil {
			t.Fatalf("provider %q: %v", tc.provider, err)
		}
		if got := engine.Provider(); got != tc.want {
			t.Fatalf("provider %q: got %q", tc.provider, got)
		}
	}
}

func TestNewEngine_RejectsUnknownProvider(t *testing.T) {
	if _, err := NewEngine(config.RenderConfig{Provider: "puppeteer"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestPaperFor(t *testing.T) {
	a4 := paperFor(resume.PageSizeA4)
	if a4.WidthInches != 8.27 || a4.HeightInches != 11.69 {
		t.Fatalf("unexpected A4 dims: %+v", a4)
	}
	letter := paperFor(resume.PageSizeLetter)
	if letter.WidthInches != 8.5 || letter.HeightInches != 11.0 {
		t.Fatalf("unexpected Letter dims: %+v", letter)
	}
}

func TestMarginInches(t *testing.T) {
	// 12mm 边距
	if math.Abs(marginInches-0.4724) > 0.001 {
		t.Fatalf("unexpected margin: %f", marginInches)
	}
}

type stubEngine struct {
	err error
}

func (s *stubEngine) RenderPDF(context.Context, string, resume.PageSize) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF"), nil
}

func (s *stubEngine) Provider() string { return "stub" }

func TestInstrumentedEngine_PassesThroughResultAndError(t *testing.T) {
	ok := newInstrumented(&stubEngine{})
	data, err := ok.RenderPDF(context.Background(), "<html></html>", resume.PageSizeA4)
	if err != nil || string(data) != "%PDF" {
		t.Fatalf("unexpected result: %q %v", data, err)
	}

	boom := errors.New("boom")
	failing := newInstrumented(&stubEngine{err: boom})
	if _, err := failing.RenderPDF(context.Background(), "", resume.PageSizeA4); !errors.Is(err, boom) {
		t.Fatalf("error not passed through: %v", err)
	}
	if failing.Provider() != "stub" {
		t.Fatalf("provider not passed through")
	}
}
