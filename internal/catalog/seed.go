package catalog

var seedCategories = []Category{
	{ID: 1, Name: "Electronics", Slug: "electronics"},
	{ID: 2, Name: "Wearables", Slug: "wearables"},
	{ID: 3, Name: "Computer Accessories", Slug: "computer-accessories"},
	{ID: 4, Name: "Home & Kitchen", Slug: "home-kitchen"},
}

var seedProducts = []Product{
	{
		ID:            "101",
		Name:          "Wireless Headphones Pro",
		Description:   "Over-ear wireless headphones with active noise cancellation.",
		Price:         199.99,
		OriginalPrice: 249.99,
		Image:         "assets/images/products/headphones-pro.jpg",
		CategoryID:    1,
		Stock:         50,
		Colors:        []string{"black", "silver"},
		Rating:        4.5,
		Reviews:       128,
	},
	{
		ID:            "102",
		Name:          "Smart Fitness Watch",
		Description:   "Waterproof fitness tracker with heart rate monitor and GPS.",
		Price:         189.99,
		OriginalPrice: 229.99,
		Image:         "assets/images/products/fitness-watch.jpg",
		CategoryID:    2,
		Stock:         8,
		Colors:        []string{"black", "rose"},
		Rating:        4.2,
		Reviews:       64,
	},
	{
		ID:            "103",
		Name:          "Wireless Keyboard & Mouse Combo",
		Description:   "Ergonomic wireless keyboard and mouse set with long battery life.",
		Price:         79.99,
		OriginalPrice: 99.99,
		Image:         "assets/images/products/keyboard-mouse.jpg",
		CategoryID:    3,
		Stock:         0,
		Rating:        4.0,
		Reviews:       31,
	},
	{
		ID:          "104",
		Name:        "Portable Bluetooth Speaker",
		Description: "Compact speaker with 12-hour battery and IPX7 rating.",
		Price:       49.99,
		Image:       "assets/images/products/bt-speaker.jpg",
		CategoryID:  1,
		Stock:       120,
		Discount:    10,
		Rating:      4.3,
		Reviews:     210,
	},
	{
		ID:          "105",
		Name:        "Stainless Steel French Press",
		Description: "Double-wall insulated 1L french press.",
		Price:       34.50,
		Image:       "assets/images/products/french-press.jpg",
		CategoryID:  4,
		Stock:       42,
		Rating:      4.7,
		Reviews:     89,
	},
	{
		ID:          "106",
		Name:        "USB-C Charging Hub",
		Description: "7-in-1 hub with 100W passthrough charging.",
		Price:       59.00,
		Image:       "assets/images/products/usbc-hub.jpg",
		CategoryID:  3,
		Stock:       75,
		Rating:      4.1,
		Reviews:     47,
	},
}
