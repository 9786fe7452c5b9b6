// Package handler provides the output mediums of wryte and the sink
// registry that routes entries to them.
//
// A Handler receives a record that a formatter already rendered and
// writes it somewhere. Handlers are synchronous: Handle returns once the
// record is written or has failed.
//
// Built-in handlers:
//
//   - StreamHandler writes to any io.Writer (default: colorable stdout).
//   - WatchedFileHandler appends to a file and reopens it when the path is
//     moved or removed by an external log rotator.
//   - RotatingFileHandler rotates by size and keeps a fixed number of
//     backups.
//   - SyslogHandler sends records to a syslog daemon over udp, tcp or a
//     unix socket.
//   - HTTPHandler POSTs each record to an HTTP collector such as logz.io
//     or Elasticsearch.
//
// A Sink pairs a Handler with a formatter and a minimum level. A Channel
// holds the named sinks of one logger name, applies each sink's level,
// and keeps per-sink processed, filtered and failed counters.
package handler
