// Package models contains the request, response and journal types of the
// render feature.
package models
