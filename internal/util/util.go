// Package util provides pooled helpers shared by renderers.
package util
