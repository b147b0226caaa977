// Package writers holds the serializers that render canonical messages as
// CSV, JSON or JSONL. Each format lives in its own subpackage and implements
// driven.Writer; all of them project messages through package fields, so a
// given OutputConfig yields the same columns in every format.
//
// Writers are registered with the WriterRegistry at startup.
package writers
