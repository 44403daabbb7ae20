package layout

// NavLink is an entry of the top navigation bar.
type NavLink struct {
	Label  string
	Href   string
	Active bool
}

// DefaultNav lists the catalog sections with the named section marked active.
func DefaultNav(active string) []NavLink {
	return []NavLink{
		{Label: "Wyroby", Href: "/app/products", Active: active == "products"},
		{Label: "Surowce", Href: "/app/raw-materials", Active: active == "raw-materials"},
	}
}

func linkClass(link NavLink) string {
	if link.Active {
		return "nav-link active"
	}
	return "nav-link"
}
