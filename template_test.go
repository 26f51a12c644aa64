// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTemplateAttachesRecord(t *testing.T) {
	w := NewWorld()
	id := w.NewEntity()

	tmpl := AddTemplate(testRecordB{Name: "hello"})
	_, err := tmpl.Call(context.Background(), TemplateInput{World: w, Entity: id})
	require.NoError(t, err)

	rec, ok := Get[testRecordB](w, id)
	require.True(t, ok)
	assert.Equal(t, "hello", rec.Name)
}

func TestApplyTemplatesRunsAllInOrder(t *testing.T) {
	w := NewWorld()
	id := w.NewEntity()

	var order []string
	t1 := TemplateFunc(func(w *World, id EntityID) { order = append(order, "first") })
	t2 := TemplateFunc(func(w *World, id EntityID) { order = append(order, "second") })

	applyTemplates(context.Background(), []Template{t1, t2}, w, id, NewConfig())

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestApplyTemplatesSurfacesErrorsOnEntity(t *testing.T) {
	w := NewWorld()
	id := w.NewEntity()

	failing := FuncAdapter[TemplateInput, Unit](func(_ context.Context, _ TemplateInput) (Unit, error) {
		return Unit{}, assert.AnError
	})

	applyTemplates(context.Background(), []Template{failing}, w, id, NewConfig())

	rec, ok := Get[Errors](w, id)
	require.True(t, ok)
	assert.Len(t, rec.Messages(), 1)
}
