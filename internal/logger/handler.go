package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // slog attribute used for tag filtering

// filteringHandler drops records by tag, package or file before passing them on.
type filteringHandler struct {
	base slog.Handler
	cfg  *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{base: base, cfg: cfg}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func foundInSet(set map[string]struct{}, key string) bool {
	if set == nil {
		return false
	}
	_, found := set[key]
	return found
}

// allowed applies the disabled-then-enabled rule shared by every filter dimension.
func allowed(value string, enabled, disabled map[string]struct{}) bool {
	if foundInSet(disabled, value) {
		return false
	}
	if enabled != nil && !foundInSet(enabled, value) {
		return false
	}
	return true
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.base.Handle(ctx, r)
	}

	if r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			file := strings.ToLower(filepath.Base(frame.File))
			pkg := strings.ToLower(filepath.Base(filepath.Dir(frame.File)))
			if !allowed(pkg, h.cfg.enabledPackagesSet, h.cfg.disabledPackagesSet) {
				return nil
			}
			if !allowed(file, h.cfg.enabledFilesSet, h.cfg.disabledFilesSet) {
				return nil
			}
		}
	}

	tag, tagFound := "", false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			tagFound = true
			return false
		}
		return true
	})

	if tagFound {
		if !allowed(tag, h.cfg.enabledTagsSet, h.cfg.disabledTagsSet) {
			return nil
		}
	} else if h.cfg.enabledTagsSet != nil {
		// Filtering for specific tags drops untagged messages.
		return nil
	}

	return h.base.Handle(ctx, r)
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.base.WithAttrs(attrs), h.cfg)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.base.WithGroup(name), h.cfg)
}
