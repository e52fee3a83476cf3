// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// EZOI custom field identifiers.
const (
	CustomFieldPONumber        int64 = 35860
	CustomFieldWindchillNumber int64 = 35884
)

const notAvailable = "N/A"

// FormatItemSummary renders the eight-field summary of an EZOI item.
// Missing or empty fields read "N/A"; a missing quantity reads "0".
func FormatItemSummary(itemType, itemNumber string, item gjson.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "EZOI Data for %s #%s:\n", itemType, itemNumber)
	fmt.Fprintf(&b, "Name: %s\n", orDefault(item.Get("name"), notAvailable))
	fmt.Fprintf(&b, "Description: %s\n", orDefault(item.Get("description"), notAvailable))
	fmt.Fprintf(&b, "Windchill #: %s\n", orDefault(customField(item, CustomFieldWindchillNumber), notAvailable))
	fmt.Fprintf(&b, "Model #: %s\n", orDefault(item.Get("product_model_number"), notAvailable))
	fmt.Fprintf(&b, "Vendor: %s\n", orDefault(item.Get("vendor_name"), notAvailable))
	fmt.Fprintf(&b, "Location: %s\n", orDefault(item.Get("location_name"), notAvailable))
	fmt.Fprintf(&b, "PO #: %s\n", orDefault(customField(item, CustomFieldPONumber), notAvailable))
	fmt.Fprintf(&b, "Net Quantity: %s", orDefault(item.Get("net_quantity"), "0"))
	return b.String()
}

// NotFoundMessage is shown when a lookup succeeds without an item.
func NotFoundMessage(itemType, itemNumber string) string {
	return fmt.Sprintf("No matching %s found for #%s.", itemType, itemNumber)
}

// itemPresent reports whether a lookup reply carries an item. Missing,
// null, false, zero and the empty string all mean no item; any object or
// array counts, even an empty one.
func itemPresent(item gjson.Result) bool {
	if !item.Exists() {
		return false
	}
	switch item.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return item.Float() != 0
	case gjson.String:
		return item.Str != ""
	default:
		return true
	}
}

// customField finds the value of the custom field with id.
func customField(item gjson.Result, id int64) gjson.Result {
	var found gjson.Result
	item.Get("custom_fields").ForEach(func(_, field gjson.Result) bool {
		if idv := field.Get("id"); idv.Type == gjson.Number && idv.Int() == id {
			found = field.Get("value")
			return false
		}
		return true
	})
	return found
}

// orDefault renders v, or def when v is missing, null, false, zero or empty.
func orDefault(v gjson.Result, def string) string {
	switch v.Type {
	case gjson.Null, gjson.False:
		return def
	case gjson.Number:
		if v.Num == 0 {
			return def
		}
		return v.String()
	case gjson.String:
		if v.Str == "" {
			return def
		}
		return v.Str
	default:
		if !v.Exists() {
			return def
		}
		return v.String()
	}
}
