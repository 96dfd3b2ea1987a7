// Package catalog turns a flat listing of bucket files into images for the
// site: it maps logical categories to storage folders, picks random images
// for single lookups and rotates shuffled per-category pools when composing
// the portfolio gallery.
//
// A catalog snapshot is loaded once through a Loader and published by a
// Store; every selection works on an immutable []Record held in memory and
// never touches the network.
package catalog
