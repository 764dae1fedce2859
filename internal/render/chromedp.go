package render

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"smartfolio/internal/resume"
)

// chromedpEngine 通过 DevTools 协议驱动系统已安装的浏览器二进制，
// 适合预装了精简 Chromium 的受限服务器环境。
type chromedpEngine struct {
	browserPath string
}

func (e *chromedpEngine) Provider() string { return "chromedp" }

func (e *chromedpEngine) RenderPDF(ctx context.Context, htmlContent string, size resume.PageSize) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.browserPath != "" {
		opts = append(opts, chromedp.ExecPath(e.browserPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	// 先用空动作拉起浏览器，把“引擎不可用”与后续加载/捕获失败区分开。
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("%w: start browser: %v", ErrEngineUnavailable, err)
	}

	paper := paperFor(size)
	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("frame tree: %w", err)
			}
			if err := page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx); err != nil {
				return fmt.Errorf("set document content: %w", err)
			}
			return nil
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// 与 rod 实现的 WaitLoad/WaitIdle 对齐：等到文档完全加载再捕获。
		chromedp.Poll(`document.readyState === "complete"`, nil,
			chromedp.WithPollingTimeout(10*time.Second)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paper.WidthInches).
				WithPaperHeight(paper.HeightInches).
				WithMarginTop(marginInches).
				WithMarginBottom(marginInches).
				WithMarginLeft(marginInches).
				WithMarginRight(marginInches).
				Do(ctx)
			if err != nil {
				return fmt.Errorf("export pdf: %w", err)
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdf, nil
}
