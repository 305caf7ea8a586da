// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validator

import (
	"fmt"
	"strconv"

	"github.com/Independence-University/json-validator/internal/validerr"
	"github.com/Independence-University/json-validator/pkg/jsontext"
	"github.com/Independence-University/json-validator/pkg/types"
)

// ValidatePre2020Items validates an items keyword.
// Before draft 2020-12 items takes either a single schema,
// which applies to every element, or an array of schemas,
// which apply to the elements at the same position.
func ValidatePre2020Items(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.Array {
		return nil
	}

	var topErr error
	if arg.Kind == jsontext.Object {
		for i, v := range instance.Items {
			err := state.ValidateSubSchema(arg, v, strconv.Itoa(i))
			validerr.AddError(&topErr, err, "")
		}
		return topErr
	}

	for i, s := range arg.Items {
		if i >= len(instance.Items) {
			break
		}
		err := state.ValidateSubSchema(s, instance.Items[i], strconv.Itoa(i))
		validerr.AddError(&topErr, err, strconv.Itoa(i))
	}
	return topErr
}

// ValidatePre2020AdditionalItems validates an additionalItems keyword.
// It only has an effect when the sibling items keyword
// is an array of schemas; the elements beyond that array
// must then satisfy additionalItems.
func ValidatePre2020AdditionalItems(arg, instance *jsontext.Node, state *types.ValidationState) error {
	if instance.Kind != jsontext.Array {
		return nil
	}
	items, ok := state.Schema.Lookup("items")
	if !ok || items.Kind != jsontext.Array {
		return nil
	}
	idx := len(items.Items)
	if idx >= len(instance.Items) {
		return nil
	}

	var topErr error
	if arg.Kind == jsontext.Boolean {
		if arg.Bool {
			return nil
		}
		for i := idx; i < len(instance.Items); i++ {
			validerr.AddValidationErrorStruct(&topErr, &validerr.ValidationError{
				Message:          fmt.Sprintf(`item %d not permitted by "additionalItems"`, i),
				InstanceLocation: state.InstancePointer() + "/" + strconv.Itoa(i),
				Node:             instance.Items[i],
			})
		}
		return topErr
	}

	for i := idx; i < len(instance.Items); i++ {
		err := state.ValidateSubSchema(arg, instance.Items[i], strconv.Itoa(i))
		validerr.AddError(&topErr, err, "")
	}
	return topErr
}
