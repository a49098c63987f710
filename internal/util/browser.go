package util

import (
	"errors"
	"os/exec"
	"runtime"
)

// launcher 一条打开 URL 的命令（名称 + 前置参数）
type launcher struct {
	name string
	args []string
}

// launchersFor 按优先级返回各平台可用的打开方式
func launchersFor(goos string) []launcher {
	switch goos {
	case "windows":
		// rundll32 在 Windows 7 上比 cmd /c start 稳定
		return []launcher{
			{name: "rundll32", args: []string{"url.dll,FileProtocolHandler"}},
			{name: "explorer"},
		}
	case "darwin":
		return []launcher{{name: "open"}}
	default:
		return []launcher{
			{name: "xdg-open"},
			{name: "google-chrome"},
			{name: "firefox"},
			{name: "chromium-browser"},
			{name: "sensible-browser"},
		}
	}
}

// OpenBrowser 使用平台首选方式打开 url
func OpenBrowser(url string) error {
	l := launchersFor(runtime.GOOS)[0]
	return exec.Command(l.name, append(l.args, url)...).Start()
}

// OpenBrowserWithFallback 依次尝试各平台的打开方式，全部失败时返回第一个错误
func OpenBrowserWithFallback(url string) error {
	var first error
	for _, l := range launchersFor(runtime.GOOS) {
		err := exec.Command(l.name, append(l.args, url)...).Start()
		if err == nil {
			return nil
		}
		if first == nil {
			first = err
		}
	}
	if first == nil {
		first = errors.New("no browser launcher available")
	}
	return first
}
