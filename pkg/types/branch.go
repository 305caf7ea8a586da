// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/sourcegraph/conc/pool"

	"github.com/Independence-University/json-validator/internal/validerr"
	"github.com/Independence-University/json-validator/pkg/jsontext"
)

// Branches validates instance against each schema in arg,
// an array of subschemas, and returns the result of each in order.
//
// If the evaluation permits concurrency the branches run in
// parallel. Each branch then reports schema errors to a sink of
// its own, and the sinks are merged in branch order afterward,
// so the errors come out in the same order either way.
func (vs *ValidationState) Branches(arg, instance *jsontext.Node) []error {
	errs := make([]error, len(arg.Items))
	if vs.run.concurrency < 2 || len(arg.Items) < 2 {
		for i, sub := range arg.Items {
			errs[i] = vs.ValidateInPlaceSchema(sub, instance)
		}
		return errs
	}

	sinks := make([]*validerr.Sink, len(arg.Items))
	p := pool.New().WithMaxGoroutines(vs.run.concurrency)
	for i, sub := range arg.Items {
		sinks[i] = new(validerr.Sink)
		branch := *vs
		branch.Sink = sinks[i]
		p.Go(func() {
			errs[i] = branch.ValidateInPlaceSchema(sub, instance)
		})
	}
	p.Wait()

	for _, s := range sinks {
		vs.Sink.Merge(s)
	}
	return errs
}
