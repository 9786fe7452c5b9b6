// Package core defines the shared types used across wryte.
//
// It provides the Level type for severity filtering, the Entry type that
// represents a single log record, the Fields type used for bound context
// and the Field type for keyword-style values passed at a call site.
//
// Normalize turns heterogeneous context objects (maps, JSON text,
// key=value text) into one flat Fields value. Values that fit none of
// those shapes are kept under a generated "_bad_object_<uuid>" key so
// that nothing passed by a caller is silently dropped.
//
// Enrich builds an Entry from a logger's bound context, the normalized
// objects and keyword fields of one call, and the reserved message, level
// and timestamp keys. The reserved keys are always written last and can
// not be shadowed by caller context.
package core
