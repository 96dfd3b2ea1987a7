package catalog

import (
	"fmt"
	"strings"
)

// Category is a logical section of the portfolio.
type Category int

const (
	Shows Category = iota + 1
	Gastronomy
	Portraits
	SocialProject
	Services
	Site
	ShowsAndEvents
)

// Categories lists every known category in display order.
var Categories = []Category{Shows, Gastronomy, Portraits, SocialProject, Services, Site, ShowsAndEvents}

// aliases maps lower-cased free-text category names to storage folders.
var aliases = map[string]string{
	"shows":             "Shows",
	"gastronomia":       "gastronomia",
	"retratos":          "retratos",
	"projeto social":    "projeto_social",
	"projetos autorais": "projeto_social",
	"servicos":          "Services",
	"site":              "site",
	"autorais":          "projeto_social",
}

// Folder returns the storage folder of c, or "" for an invalid value.
func (c Category) Folder() string {
	switch c {
	case Shows:
		return "Shows"
	case Gastronomy:
		return "gastronomia"
	case Portraits:
		return "retratos"
	case SocialProject:
		return "projeto_social"
	case Services:
		return "Services"
	case Site:
		return "site"
	case ShowsAndEvents:
		return "Services/Shows e Eventos"
	}
	return ""
}

func (c Category) String() string {
	switch c {
	case Shows:
		return "Shows"
	case Gastronomy:
		return "Gastronomia"
	case Portraits:
		return "Retrato"
	case SocialProject:
		return "Projeto Social"
	case Services:
		return "Serviços"
	case Site:
		return "Site"
	case ShowsAndEvents:
		return "Shows e Eventos"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

func (c Category) MarshalText() ([]byte, error) {
	if c.Folder() == "" {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, ok := ParseCategory(string(b))
	if !ok {
		return fmt.Errorf("unknown category %q", string(b))
	}
	*c = parsed
	return nil
}

// ParseCategory accepts a display label, an alias key or a folder name,
// case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	folder := FolderFor(s)
	for _, c := range Categories {
		if strings.EqualFold(c.Folder(), folder) || strings.EqualFold(c.String(), s) {
			return c, true
		}
	}
	return 0, false
}

// FolderFor maps a free-text category to its storage folder. Names missing
// from the alias table are returned verbatim.
func FolderFor(category string) string {
	if folder, ok := aliases[strings.ToLower(category)]; ok {
		return folder
	}
	return category
}
