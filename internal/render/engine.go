package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartfolio/internal/config"
	"smartfolio/internal/metrics"
	"smartfolio/internal/resume"
)

// Engine 将自包含的 HTML 标记栅格化为分页 PDF 字节流。
// 实现必须保证：单次尝试、不重试；无论成败，外部浏览器
// 进程/连接都在返回前释放。
type Engine interface {
	RenderPDF(ctx context.Context, html string, size resume.PageSize) ([]byte, error)
	Provider() string
}

// ErrEngineUnavailable 表示渲染引擎进程无法启动或连接
//（环境缺少浏览器二进制等）。调用方可用 errors.Is 区分。
var ErrEngineUnavailable = errors.New("render engine unavailable")

// 12mm 页边距换算为英寸（CDP 的 printToPDF 以英寸计）。
const marginInches = 12.0 / 25.4

type paperSize struct {
	WidthInches  float64
	HeightInches float64
}

func paperFor(size resume.PageSize) paperSize {
	if size == resume.PageSizeLetter {
		return paperSize{WidthInches: 8.5, HeightInches: 11.0}
	}
	// A4: 210mm x 297mm
	return paperSize{WidthInches: 8.27, HeightInches: 11.69}
}

// NewEngine 根据配置的 provider 枚举构造渲染引擎。
// 选择是启动期配置而非运行时环境探测，两种实现行为等价可互换。
func NewEngine(cfg config.RenderConfig) (Engine, error) {
	switch cfg.Provider {
	case "rod":
		return newInstrumented(&rodEngine{browserPath: cfg.BrowserPath}), nil
	case "chromedp":
		return newInstrumented(&chromedpEngine{browserPath: cfg.BrowserPath}), nil
	default:
		return nil, fmt.Errorf("unknown render provider %q", cfg.Provider)
	}
}

// instrumentedEngine 为任意实现记录渲染时延与失败指标。
type instrumentedEngine struct {
	inner Engine
}

func newInstrumented(inner Engine) Engine {
	return &instrumentedEngine{inner: inner}
}

func (e *instrumentedEngine) Provider() string { return e.inner.Provider() }

func (e *instrumentedEngine) RenderPDF(ctx context.Context, html string, size resume.PageSize) ([]byte, error) {
	start := time.Now()
	data, err := e.inner.RenderPDF(ctx, html, size)
	metrics.ObserveRender(e.inner.Provider(), time.Since(start), err)
	return data, err
}
