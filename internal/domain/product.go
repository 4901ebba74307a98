package domain

// Product is a static catalog entry. Price is in whole rupees.
type Product struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// Catalog is the read-only product list, fixed at process start.
type Catalog []Product

// DefaultCatalog returns the remedy shop catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: 1, Name: "Neem Oil Extract", Price: 450, Category: "Organic Pest Control", Image: "/neem-oil.jpg"},
		{ID: 2, Name: "Copper Fungicide", Price: 420, Category: "Disease Control", Image: "/copper-fungicide.png"},
		{ID: 3, Name: "Premium Potting Mix", Price: 650, Category: "Soil Health", Image: "/potting-mix.png"},
		{ID: 4, Name: "Bypass Pruning Shears", Price: 1250, Category: "Tools", Image: "/pruning-shears.png"},
		{ID: 5, Name: "Digital Soil pH Meter", Price: 890, Category: "Diagnostics", Image: "/soil-ph-meter.png"},
		{ID: 6, Name: "Rooting Hormone Gel", Price: 340, Category: "Propagation", Image: "/rooting-gel.jpg"},
		{ID: 7, Name: "Leaf Shine Polish", Price: 250, Category: "Aesthetic", Image: "https://images.unsplash.com/photo-1598512752271-33f913a5af13?auto=format&fit=crop&q=80&w=600"},
		{ID: 8, Name: "Ceramic Watering Can", Price: 1450, Category: "Accessories", Image: "/watering-can.png"},
	}
}

// Lookup resolves a product by id.
func (c Catalog) Lookup(id int) (Product, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Contains reports whether id resolves in the catalog.
func (c Catalog) Contains(id int) bool {
	_, ok := c.Lookup(id)
	return ok
}

// Total sums the prices of ids; ids that do not resolve contribute zero.
func (c Catalog) Total(ids []int) int {
	total := 0
	for _, id := range ids {
		if p, ok := c.Lookup(id); ok {
			total += p.Price
		}
	}
	return total
}
