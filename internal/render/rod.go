package render

import (
	"fmt"
	"io"
	"time"

	"context"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"smartfolio/internal/resume"
)

// rodEngine 每次调用启动一个受管的无头 Chromium。
// launcher 会在本机缺少浏览器时自动下载一份，适合开发环境。
type rodEngine struct {
	browserPath string
}

func (e *rodEngine) Provider() string { return "rod" }

func (e *rodEngine) RenderPDF(ctx context.Context, htmlContent string, size resume.PageSize) ([]byte, error) {
	launch := launcher.New().
		Headless(true).
		NoSandbox(true)

	if e.browserPath != "" {
		launch = launch.Bin(e.browserPath)
	} else if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		launch.Cleanup()
		return nil, fmt.Errorf("%w: launch chromium: %v", ErrEngineUnavailable, err)
	}
	defer launch.Cleanup()

	browser := rod.New().ControlURL(browserURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: connect browser: %v", ErrEngineUnavailable, err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Timeout(30 * time.Second).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	page = page.Timeout(30 * time.Second)
	if err := page.SetDocumentContent(htmlContent); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}

	// 标记是自包含的，但仍等待加载与空闲，保证字体/样式就绪。
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}
	if err := page.WaitIdle(10 * time.Second); err != nil {
		return nil, fmt.Errorf("wait idle: %w", err)
	}

	paper := paperFor(size)
	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      float64Ptr(paper.WidthInches),
		PaperHeight:     float64Ptr(paper.HeightInches),
		MarginTop:       float64Ptr(marginInches),
		MarginBottom:    float64Ptr(marginInches),
		MarginLeft:      float64Ptr(marginInches),
		MarginRight:     float64Ptr(marginInches),
	})
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}

	return data, nil
}

func float64Ptr(value float64) *float64 {
	return &value
}
