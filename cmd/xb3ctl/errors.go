package main

import (
	"fmt"
	"strings"
)

// usageError 参数错误，映射为退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// cliUsageMarkers urfave/cli 解析失败时的错误文本特征。
var cliUsageMarkers = []string{
	"flag provided but not defined",
	"invalid value",
	"no help topic",
	"command not found",
	"required flag",
}

// isCLIUsageError 判断错误是否来自 CLI 框架的参数解析。
func isCLIUsageError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, m := range cliUsageMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
