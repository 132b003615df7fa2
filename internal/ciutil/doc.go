// Package ciutil detects CI environments and collects the metadata that the
// CI log handler attaches to every record (provider, run, commit, ref).
package ciutil
