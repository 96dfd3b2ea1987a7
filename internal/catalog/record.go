package catalog

import "strings"

// Record is one file discovered in the object store.
type Record struct {
	// Name is the storage path, "<folder>/<filename>".
	Name string `json:"name"`
	// Category is the folder name exactly as listed.
	Category string `json:"category"`
	// PublicURL is the fetchable URL of the file. Empty when the backend
	// could not produce one; such records are never selected.
	PublicURL string `json:"publicUrl"`
}

func (r Record) usable() bool {
	return r.PublicURL != ""
}

// InFolder reports whether the record was listed under folder, ignoring case.
func (r Record) InFolder(folder string) bool {
	return strings.EqualFold(r.Category, folder)
}

// Filter returns the usable records of folder, in collection order.
func Filter(records []Record, folder string) []Record {
	var out []Record
	for _, r := range records {
		if r.usable() && r.InFolder(folder) {
			out = append(out, r)
		}
	}
	return out
}
