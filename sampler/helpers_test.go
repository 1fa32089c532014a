// SPDX-License-Identifier: MIT
package sampler_test

import (
	"io"
	"log/slog"
)

func slogText(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
