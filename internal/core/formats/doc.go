// Package formats registers the inventory export formats with core.
// Import it for side effects.
package formats
