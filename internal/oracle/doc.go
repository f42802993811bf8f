// Package oracle provides clients for the external classification
// oracle: a language model consulted when static rules cannot resolve a
// chapter and heading. The oracle's output is a trusted black box whose
// result is validated by the caller, never reproduced locally.
package oracle
