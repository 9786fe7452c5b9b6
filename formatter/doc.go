// Package formatter defines how log entries are serialized into bytes.
//
// Two formatters are built in. JSONFormatter renders the entry mapping
// as one JSON document. ConsoleFormatter renders a human-readable line,
//
//	2026-02-01T15:01:08.000000Z - my-service - INFO - request handled
//	  path=/users
//	  status=200
//
// followed either by one key=value line per remaining field (pretty) or
// by an indented JSON block. In simple mode only the message is printed.
//
// Formatters use a pooled bytes.Buffer internally. Buffers larger than
// 64 KiB are not returned to the pool to prevent a single large log line
// from permanently inflating memory usage.
package formatter
