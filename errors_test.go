// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsAppendAndMessages(t *testing.T) {
	var e Errors
	e.Append("first")
	e.Append("second")
	assert.Equal(t, []string{"first", "second"}, e.Messages())
}

func TestErrorsDrainClears(t *testing.T) {
	var e Errors
	e.Append("boom")

	drained := e.Drain()
	assert.Equal(t, []string{"boom"}, drained)
	assert.Empty(t, e.Messages())
}

func TestAppendErrorClassifiesAndStores(t *testing.T) {
	w := NewWorld()
	id := w.NewEntity()
	cfg := NewConfig()

	appendError(w, id, cfg, context.DeadlineExceeded)

	rec, ok := Get[Errors](w, id)
	require.True(t, ok)
	require.Len(t, rec.Messages(), 1)
	assert.Equal(t, "ETIMEDOUT: "+context.DeadlineExceeded.Error(), rec.Messages()[0])
}

func TestAppendErrorDebugFatalPanics(t *testing.T) {
	w := NewWorld()
	id := w.NewEntity()
	cfg := NewConfig()
	cfg.DebugFatal = true

	assert.Panics(t, func() {
		appendError(w, id, cfg, errors.New("fatal"))
	})

	rec, ok := Get[Errors](w, id)
	require.True(t, ok)
	assert.Len(t, rec.Messages(), 1)
}
