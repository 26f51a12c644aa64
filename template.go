// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import "context"

// TemplateInput is what a [Template] is called with: the world and the
// entity the template should attach records to.
type TemplateInput struct {
	World  *World
	Entity EntityID
}

// Template is a record-template applied to a target entity.
// [ListenRecord]'s on-accept records, [RouteEntity]'s per-pattern and
// otherwise records, and [Redirecting]'s on-redirect records are each a
// []Template applied to a target entity.
//
// This reuses the [Func] composition primitive instead of a bespoke
// closure type: a Template is a [Func] from [TemplateInput] to [Unit], so
// [FuncAdapter], [ConstFunc], and [Compose2] all apply directly to
// building and combining templates.
type Template = Func[TemplateInput, Unit]

// TemplateFunc adapts a plain function into a [Template].
func TemplateFunc(fn func(w *World, id EntityID)) Template {
	return FuncAdapter[TemplateInput, Unit](func(_ context.Context, in TemplateInput) (Unit, error) {
		fn(in.World, in.Entity)
		return Unit{}, nil
	})
}

// AddTemplate returns a [Template] that attaches a copy of value to the
// target entity. This is the common case: "on accept, attach a
// ReceiveRecord configured like so".
func AddTemplate[T any](value T) Template {
	return TemplateFunc(func(w *World, id EntityID) {
		Add(w, id, value)
	})
}

// applyTemplates runs every template in templates against (w, id), in
// order, ignoring the [Unit] result. Templates are not expected to fail;
// any error is treated as an entity-surfaced error like any other.
//
// The templates are folded into a single pipeline with [Compose2]: each
// step's [Unit] output is discarded and [ConstFunc] replays the same
// TemplateInput to the next step, since every template shares one target
// entity rather than threading a value through the chain. [Apply] then
// binds that input and [Func.Call] runs the whole fold in one pass.
func applyTemplates(ctx context.Context, templates []Template, w *World, id EntityID, cfg *Config) {
	if len(templates) == 0 {
		return
	}
	input := TemplateInput{World: w, Entity: id}
	pipeline := templates[0]
	for _, t := range templates[1:] {
		pipeline = Compose2(pipeline, Compose2(ConstFunc(input), t))
	}
	if _, err := Apply(pipeline, input).Call(ctx, Unit{}); err != nil {
		appendError(w, id, cfg, err)
	}
}
