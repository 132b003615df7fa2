// Package domain contains the core business entities, value objects, and
// domain logic of the application. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
//
// The only entity is Task. Its invariants (non-empty title, recognised
// status) are enforced here so that every store implementation and every
// transport shares the same rules.
package domain
