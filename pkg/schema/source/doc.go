// Package source provides schema sources for the validation engine.
//
// A schema source loads the full schema set and can watch for changes.
// The file source reads YAML schema documents from a file or directory and
// watches them with fsnotify, debounced so editor save storms trigger a
// single reload:
//
//	src := source.NewFileSource("schemas/", nil, logger)
//	set, err := src.Load(ctx)
//
//	events, err := src.Watch(ctx)
//	for range events {
//	    set, err = src.Load(ctx)
//	    // swap the set into the running validator host
//	}
//
// The in-memory source serves tests and embedded configurations.
package source
