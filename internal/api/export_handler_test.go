package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"smartfolio/internal/render"
	"smartfolio/internal/resume"
)

type fakeEngine struct {
	pdf      []byte
	err      error
	lastHTML string
	lastSize resume.PageSize
}

func (e *fakeEngine) RenderPDF(_ context.Context, html string, size resume.PageSize) ([]byte, error) {
	e.lastHTML = html
	e.lastSize = size
	if e.err != nil {
		return nil, e.err
	}
	return e.pdf, nil
}

func (e *fakeEngine) Provider() string { return "fake" }

func newExportTestContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/v1/resume/export", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

const exportBody = `{
	"profile": {"name": "Asha Kumar", "email": "asha@example.edu"},
	"template": "modern",
	"pageSize": "A4",
	"fileName": "Asha Kumar"
}`

func TestExportResume_ReturnsPDFAttachment(t *testing.T) {
	engine := &fakeEngine{pdf: []byte("%PDF-1.7 fake")}
	h := &ExportHandler{engine: engine, renderTimeout: time.Second}

	c, w := newExportTestContext(t, exportBody)
	h.ExportResume(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="Asha_Kumar.pdf"` {
		t.Fatalf("unexpected content disposition %q", got)
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("unexpected cache control %q", got)
	}
	if !bytes.Equal(w.Body.Bytes(), engine.pdf) {
		t.Fatalf("response body is not the engine output")
	}
	if engine.lastSize != resume.PageSizeA4 {
		t.Fatalf("expected A4 page size, got %q", engine.lastSize)
	}
	if !strings.Contains(engine.lastHTML, "Asha Kumar") {
		t.Fatalf("engine did not receive rendered markup")
	}
}

func TestExportResume_EngineUnavailableReturns503(t *testing.T) {
	engine := &fakeEngine{err: render.ErrEngineUnavailable}
	h := &ExportHandler{engine: engine, renderTimeout: time.Second}

	c, w := newExportTestContext(t, exportBody)
	h.ExportResume(c)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"error"`) {
		t.Fatalf("expected error payload, got %s", w.Body.String())
	}
}

func TestExportResume_RejectsMalformedJSON(t *testing.T) {
	engine := &fakeEngine{pdf: []byte("%PDF")}
	h := &ExportHandler{engine: engine, renderTimeout: time.Second}

	c, w := newExportTestContext(t, `{"profile": `)
	h.ExportResume(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if engine.lastHTML != "" {
		t.Fatalf("engine should not be called for malformed input")
	}
}

func TestPreviewResume_ReturnsSameMarkupAsExport(t *testing.T) {
	engine := &fakeEngine{pdf: []byte("%PDF")}
	h := &ExportHandler{engine: engine, renderTimeout: time.Second}

	c, _ := newExportTestContext(t, exportBody)
	h.ExportResume(c)
	exportHTML := engine.lastHTML

	c2, w2 := newExportTestContext(t, exportBody)
	h.PreviewResume(c2)

	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w2.Code, w2.Body.String())
	}
	if got := w2.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("unexpected content type %q", got)
	}
	if w2.Body.String() != exportHTML {
		t.Fatalf("preview markup differs from export markup")
	}
}

func TestExportResume_DefaultsFileNameFromProfile(t *testing.T) {
	engine := &fakeEngine{pdf: []byte("%PDF")}
	h := &ExportHandler{engine: engine, renderTimeout: time.Second}

	body := `{"profile": {"name": "Ravi/Iyer", "email": "ravi@example.edu"}}`
	c, w := newExportTestContext(t, body)
	h.ExportResume(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="Ravi_Iyer.pdf"` {
		t.Fatalf("unexpected content disposition %q", got)
	}
}
