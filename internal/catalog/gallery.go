package catalog

// Palette is the accent colour set a gallery slot lights the page with.
type Palette struct {
	Name   string `json:"name"`
	Accent string `json:"accent"`
	Glow   string `json:"glow"`
}

var (
	Terracotta = Palette{Name: "terracotta", Accent: "#C87A5A", Glow: "rgba(200, 122, 90, 0.15)"}
	DeepBlue   = Palette{Name: "deepBlue", Accent: "#587EA8", Glow: "rgba(15, 42, 74, 0.25)"}
	SageGreen  = Palette{Name: "sageGreen", Accent: "#8FA89F", Glow: "rgba(104, 122, 115, 0.2)"}
	BurntGold  = Palette{Name: "burntGold", Accent: "#D4A66A", Glow: "rgba(170, 122, 54, 0.15)"}
	Neutral    = Palette{Name: "neutral", Accent: "#a3a3a3", Glow: "transparent"}
)

// Slot describes one position of the portfolio gallery.
type Slot struct {
	ID          int
	Category    Category
	Title       string
	AspectRatio string
	Palette     Palette
	// Fallback is used when no image of Category exists at all.
	Fallback string
}

// GalleryItem is a slot with its image resolved.
type GalleryItem struct {
	ID          int      `json:"id"`
	Category    Category `json:"category"`
	Folder      string   `json:"folder"`
	Title       string   `json:"title"`
	AspectRatio string   `json:"aspectRatio"`
	Palette     Palette  `json:"palette"`
	Src         string   `json:"src"`
}

// DefaultLayout is the portfolio as shown on the home page.
var DefaultLayout = []Slot{
	{ID: 1, Category: Shows, Title: "Performance", AspectRatio: "2/3", Palette: DeepBlue},
	{ID: 2, Category: Gastronomy, Title: "Paladar Visual", AspectRatio: "4/3", Palette: Terracotta},
	{ID: 3, Category: Portraits, Title: "Essência", AspectRatio: "1/1", Palette: Terracotta},
	{ID: 4, Category: SocialProject, Title: "Humanidade", AspectRatio: "3/4", Palette: SageGreen},
	{ID: 5, Category: Shows, Title: "Luz e Som", AspectRatio: "3/2", Palette: DeepBlue},
	{ID: 6, Category: Portraits, Title: "Olhar", AspectRatio: "2/3", Palette: BurntGold},
	{ID: 7, Category: Gastronomy, Title: "Texturas", AspectRatio: "1/1", Palette: Terracotta},
	{ID: 8, Category: SocialProject, Title: "Resiliência", AspectRatio: "4/5", Palette: DeepBlue},
	{ID: 9, Category: Shows, Title: "Vibração", AspectRatio: "4/5", Palette: BurntGold},
	{ID: 10, Category: Portraits, Title: "Identidade", AspectRatio: "3/4", Palette: SageGreen},
	{ID: 11, Category: Gastronomy, Title: "Sabor", AspectRatio: "2/3", Palette: Terracotta},
	{ID: 12, Category: SocialProject, Title: "Verdade", AspectRatio: "3/2", Palette: DeepBlue},
	{ID: 13, Category: Shows, Title: "Atmosfera", AspectRatio: "1/1", Palette: SageGreen},
	{ID: 14, Category: Portraits, Title: "Alma", AspectRatio: "4/3", Palette: BurntGold},
	{ID: 15, Category: Shows, Title: "Palco", AspectRatio: "2/3", Palette: DeepBlue},
}

// Compose resolves every slot of layout from one fresh Pool over records.
func Compose(records []Record, layout []Slot, rnd Rand) []GalleryItem {
	pool := NewPool(records, rnd)

	items := make([]GalleryItem, 0, len(layout))
	for _, s := range layout {
		folder := s.Category.Folder()
		items = append(items, GalleryItem{
			ID:          s.ID,
			Category:    s.Category,
			Folder:      folder,
			Title:       s.Title,
			AspectRatio: s.AspectRatio,
			Palette:     s.Palette,
			Src:         pool.Image(folder, s.Fallback),
		})
	}
	return items
}

// Neighbor returns the id of the item direction steps away from id,
// wrapping at both ends (lightbox navigation).
func Neighbor(items []GalleryItem, id, direction int) (int, bool) {
	n := len(items)
	for i, item := range items {
		if item.ID == id {
			next := ((i+direction)%n + n) % n
			return items[next].ID, true
		}
	}
	return 0, false
}
