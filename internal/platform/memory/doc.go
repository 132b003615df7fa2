// Package memory provides an in-process implementation of store.TaskStore.
//
// State lives only in process memory and is lost on restart. Each running
// instance owns an independent collection.
package memory
