package xautoprop

import "errors"

var (
	// ErrEmptyName 提供者名称为空。
	ErrEmptyName = errors.New("xautoprop: empty provider name")

	// ErrDuplicate 名称已被注册。
	ErrDuplicate = errors.New("xautoprop: provider already registered")

	// ErrUnknown 请求了未注册的名称。
	ErrUnknown = errors.New("xautoprop: unknown propagator")

	// ErrNilProvider 注册了 nil 提供者。
	ErrNilProvider = errors.New("xautoprop: nil provider")

	// ErrAlreadyInitialized 进程级 b3multi-ext 实例已经创建，不能再替换。
	ErrAlreadyInitialized = errors.New("xautoprop: b3multi-ext already initialized")
)
