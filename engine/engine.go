// Copyright 2019 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"fmt"
	"sort"
	"time"

	"schemaforge.dev/migrate/diag"
	"schemaforge.dev/migrate/fix"
	"schemaforge.dev/migrate/migerr"
	"schemaforge.dev/migrate/result"
	"schemaforge.dev/migrate/schema"
	"schemaforge.dev/migrate/tree"
	"schemaforge.dev/migrate/typedsl"
)

// Engine holds a frozen schema registry and an ordered fix catalog, and
// applies the sequence of fixes needed to move a Tagged value from one
// DataVersion to another.
type Engine[V any] struct {
	ops      tree.Ops[V]
	registry *schema.Registry[V]
	fixes    []*fix.Fix[V]
	current  schema.DataVersion
}

// CurrentVersion reports the DataVersion new data should be tagged with.
func (e *Engine[V]) CurrentVersion() schema.DataVersion { return e.current }

// SchemaFor exposes the registry's nearest-at-or-below lookup.
func (e *Engine[V]) SchemaFor(v schema.DataVersion) (*schema.Schema[V], bool) {
	return e.registry.SchemaFor(v)
}

func (e *Engine[V]) selectFixes(from, to schema.DataVersion) []*fix.Fix[V] {
	var selected []*fix.Fix[V]
	for _, f := range e.fixes {
		if f.From.Compare(from) >= 0 && f.To.Compare(to) <= 0 {
			selected = append(selected, f)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].From.Compare(selected[j].From) < 0
	})
	return selected
}

// Update migrates tagged from fromVersion to toVersion, applying every
// registered fix for tagged.TypeRef whose [From, To] range falls within
// [from, to], in ascending From order (registration order breaking ties).
//
// Soft failures (partial decode, a rule-level warning) are recorded on sink
// and migration continues with the best available value. Hard failures
// (unresolved type, a decode/encode error) abort: the returned Tagged value
// reflects every fix that fully completed before the failure, and the
// result carries the error.
func (e *Engine[V]) Update(tagged Tagged[V], from, to schema.DataVersion, sink *diag.Sink) (Tagged[V], result.R[Unit]) {
	start := time.Now()
	sink.Emit(diag.NewMigrationStarted(string(tagged.TypeRef), from.String(), to.String()))

	if from.Compare(to) == 0 {
		sink.Emit(diag.NewMigrationCompleted(time.Since(start)))
		return tagged, result.Ok(Unit{})
	}

	current := tagged
	for _, f := range e.selectFixes(from, to) {
		if f.TypeRef != tagged.TypeRef {
			continue
		}
		fixStart := time.Now()
		sink.Emit(diag.NewFixStarted(f.Name))

		before := current.Value
		next, err := e.applyFix(f, current, sink)
		if err != nil {
			sink.Emit(diag.NewWarning(fmt.Sprintf("fix %s: %v", f.Name, err)))
			return current, result.Err[Unit](err)
		}
		current = next

		var beforeSnap, afterSnap string
		if sink.Options().CaptureSnapshots {
			beforeSnap = diag.Snapshot(before)
			afterSnap = diag.Snapshot(current.Value)
		}
		sink.Emit(diag.NewFixCompleted(f.Name, time.Since(fixStart), beforeSnap, afterSnap, sink.Options().CaptureSnapshots))
	}

	current.Version = to
	sink.Emit(diag.NewMigrationCompleted(time.Since(start)))
	return current, result.Ok(Unit{})
}

func (e *Engine[V]) applyFix(f *fix.Fix[V], tagged Tagged[V], sink *diag.Sink) (Tagged[V], error) {
	inSchema, ok := e.registry.SchemaFor(f.From)
	if !ok {
		return tagged, migerr.UnresolvedTypef("fix %s: no schema at or below version %s", f.Name, f.From)
	}
	inType, err := inSchema.GetType(f.TypeRef)
	if err != nil {
		return tagged, err
	}

	decodeResult, residual := inType.Codec().Decode(e.ops, tagged.Value)
	_ = residual
	if decodeResult.IsErr() {
		return tagged, decodeResult.Error()
	}
	for _, w := range decodeResult.Warnings() {
		sink.Emit(diag.NewWarning(w))
	}
	decoded, _ := decodeResult.Value()

	r := f.Rule(e.registry)
	ruleStart := time.Now()
	typed := typedsl.Typed[V]{Type: inType, Value: decoded}
	out, matched := r(inType, typed)
	if sink.Options().CaptureRuleDetails {
		sink.Emit(diag.NewRuleApplied(f.Name, matched, time.Since(ruleStart)))
	}
	if !matched {
		out = typed
	}

	outSchema, ok := e.registry.SchemaFor(f.To)
	if !ok {
		return tagged, migerr.UnresolvedTypef("fix %s: no schema at or below version %s", f.Name, f.To)
	}
	outType, err := outSchema.GetType(f.TypeRef)
	if err != nil {
		return tagged, err
	}

	encodeResult := outType.Codec().EncodeStart(e.ops, out.Value)
	v, ok := encodeResult.Value()
	if !ok {
		return tagged, encodeResult.Error()
	}
	for _, w := range encodeResult.Warnings() {
		sink.Emit(diag.NewWarning(w))
	}

	return Tagged[V]{TypeRef: tagged.TypeRef, Version: f.To, Value: v}, nil
}
