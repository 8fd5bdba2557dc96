package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/cjsguard/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info level", level: slog.LevelInfo, msg: "information message", goldenName: "handler_info"},
		{name: "warn level", level: slog.LevelWarn, msg: "warning message", goldenName: "handler_warn"},
		{name: "error level", level: slog.LevelError, msg: "error message", goldenName: "handler_error"},
		{name: "debug level filtered", level: slog.LevelDebug, msg: "debug message", goldenName: "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
			slog.New(handler).Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, nil).
		WithAttrs([]slog.Attr{slog.String("file", "src/index.ts")}).
		WithGroup("lint")
	slog.New(handler).Info("checked", slog.Int("violations", 2))

	g := goldie.New(t)
	g.Assert(t, "handler_attrs_group", buf.Bytes())
}

func TestPrettyHandler_ErrorAttrRendersChain(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	resolve := zerr.With(zerr.With(zerr.Wrap(errors.Join(
		zerr.New("unable to resolve import path"),
		errors.New("no such file or directory"),
	), ""), "specifier", "./helper"), "importer", "app/src/a.ts")

	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, nil)
	slog.New(handler).Error("lint pass failed", slog.Any("error", resolve), slog.Int("files", 3))

	g := goldie.New(t)
	g.Assert(t, "handler_error_chain", buf.Bytes())
}

func TestPrettyHandler_QuotesAndFlattensValues(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, nil)
	slog.New(handler).Warn("skipped package",
		slog.String("reason", "no parent package.json file"),
		slog.Group("pkg", slog.String("name", "cjs-lib"), slog.String("type", "")),
	)

	assert.Equal(t,
		"! skipped package reason=\"no parent package.json file\" pkg.name=cjs-lib pkg.type=\"\"\n",
		buf.String())
}
