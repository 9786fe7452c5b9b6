package benchmark

import (
	"github.com/philipp01105/wryte/core"
	"github.com/philipp01105/wryte/handler"
)

type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Handle(_ core.Level, p []byte) error {
	_ = len(p)
	return nil
}

func (h *noopHandler) Close() error {
	return nil
}
