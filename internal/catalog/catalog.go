// Package catalog holds the storefront's fixed product list. Products are
// defined at build time and never mutated at runtime; prices here are what
// the storefront submits to the commerce API on add-to-cart.
package catalog

// Product is a purchasable item shown on the product grid.
type Product struct {
	ID          string
	Name        string
	Price       float64
	Description string
	ImageURL    string
}

var products = []Product{
	{
		ID:          "item001",
		Name:        "Classic T-Shirt",
		Price:       19.99,
		Description: "A classic t-shirt with a simple design.",
		ImageURL:    "/static/products/classic_tshirt.svg",
	},
	{
		ID:          "item002",
		Name:        "Running Sneakers",
		Price:       89.50,
		Description: "A pair of running sneakers with a comfortable fit.",
		ImageURL:    "/static/products/running_sneakers.svg",
	},
	{
		ID:          "item003",
		Name:        "Wireless Headphones",
		Price:       149.00,
		Description: "A pair of wireless headphones with a clear sound.",
		ImageURL:    "/static/products/wireless_headphones.svg",
	},
	{
		ID:          "item004",
		Name:        "Coffee Mug",
		Price:       12.00,
		Description: "A coffee mug with a comfortable grip.",
		ImageURL:    "/static/products/coffee_mug.svg",
	},
	{
		ID:          "item005",
		Name:        "Laptop Backpack",
		Price:       55.00,
		Description: "Durable backpack with padded laptop sleeve.",
		ImageURL:    "/static/products/laptop_backpack.svg",
	},
	{
		ID:          "item006",
		Name:        "Stainless Steel Water Bottle",
		Price:       24.95,
		Description: "Insulated bottle, keeps drinks cold or hot.",
		ImageURL:    "/static/products/ss_bottle.svg",
	},
	{
		ID:          "item007",
		Name:        "Yoga Mat",
		Price:       35.00,
		Description: "Non-slip mat for your yoga practice.",
		ImageURL:    "/static/products/yoga_mat.svg",
	},
	{
		ID:          "item008",
		Name:        "Desk Lamp",
		Price:       42.50,
		Description: "Adjustable LED desk lamp with dimmer.",
		ImageURL:    "/static/products/desk_lamp.svg",
	},
}

// Products returns the full catalog. The slice is a copy; callers cannot
// mutate the catalog through it.
func Products() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// Find looks up a product by identifier.
func Find(id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
