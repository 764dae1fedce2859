package resume

import (
	"regexp"
	"strings"
)

var unsafeFileNameRuns = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

const maxFileNameLen = 64

// SanitizeFileName 将任意用户输入收敛为可安全放入
// Content-Disposition 的文件名：白名单外的字符连段替换为单个
// 下划线，长度截断到 64。不含 .pdf 后缀，后缀由投递层追加。
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultFileName
	}
	name = unsafeFileNameRuns.ReplaceAllString(name, "_")
	if len(name) > maxFileNameLen {
		name = name[:maxFileNameLen]
	}
	// 去掉调用方自带的 .pdf，避免投递层追加后出现双后缀。
	name = strings.TrimSuffix(name, ".pdf")
	if name == "" {
		name = defaultFileName
	}
	return name
}
