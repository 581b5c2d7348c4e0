// Package widgets provides drawable elements for the sample project.
package widgets
