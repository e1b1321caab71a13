// Package validator provides small, composable validation rules for strings,
// numbers, collections, formats and enumerations.
//
// A Rule couples a boolean Check with translation-friendly error metadata.
// First evaluates rules in order and stops at the first failure. The props
// package builds the constraint step of every property kind from these
// rules, so the messages and translation keys surfaced by a failed document
// load originate here.
//
// # Usage
//
//	if ve, failed := validator.First(
//	    validator.MinLenString("name", name, 3),
//	    validator.MaxLenString("name", name, 64),
//	); failed {
//	    return ve
//	}
//
// Rules hold no global state and are safe for concurrent use.
package validator
